package visits

const (
	queryInsertVisit = `
		INSERT INTO visits (ref, display_name, role_label, action, client_ip, user_agent, referrer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	queryListRecent = `
		SELECT id, ref, display_name, role_label, action, client_ip, user_agent, referrer, created_at
		FROM visits
		ORDER BY created_at DESC
		LIMIT $1
	`
)
