package track

type TrackRequest struct {
	Action      string `json:"action" binding:"required,max=50"`
	Ref         string `json:"ref" binding:"max=100"`
	DisplayName string `json:"display_name" binding:"max=200"`
	RoleLabel   string `json:"role_label" binding:"max=200"`
	UserAgent   string `json:"user_agent" binding:"max=1000"`
	Referrer    string `json:"referrer" binding:"max=2000"`
}

type TrackResponse struct {
	Status string `json:"status"`
}

const (
	statusOK    = "ok"
	statusError = "error"
)
