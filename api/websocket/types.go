package websocket

// query parameters accepted on the visitor socket
type VisitorParams struct {
	Ref         string `form:"ref" binding:"max=100"`
	DisplayName string `form:"display_name" binding:"max=200"`
	RoleLabel   string `form:"role_label" binding:"max=200"`

	// legacy landing-page parameter names
	Nombre string `form:"nombre" binding:"max=200"`
	Cargo  string `form:"cargo" binding:"max=200"`
}

// query parameters accepted on the admin socket
type AdminParams struct {
	Key   string `form:"key"`
	Token string `form:"token"` // admin jwt from POST /api/admin/token
}

// a visitor frame; non-JSON frames are taken as raw text
type visitorFrame struct {
	Text string `json:"text"`
}

// an admin frame: {type: "message"|"typing", session_id, text}
type adminFrame struct {
	Type        string `json:"type"`
	SessionID   string `json:"session_id"`
	Text        string `json:"text"`
	Ref         string `json:"ref"`
	DisplayName string `json:"display_name"`
	Nombre      string `json:"nombre"`
}

// admin frame types
const (
	adminTypeMessage = "message"
	adminTypeTyping  = "typing"
)

// fresh session ids to try before giving up on a collision
const maxSessionIDAttempts = 3
