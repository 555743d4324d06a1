package chats

const (
	queryInsertMessage = `
		INSERT INTO chat_messages (session_id, ref, display_name, role_label, sender, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	queryGetHistory = `
		SELECT id, session_id, ref, display_name, role_label, sender, content, is_read, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at ASC, id ASC
	`

	// ref and names come from the latest visitor-side row of each session;
	// admin rows may carry blanks when the visitor was offline
	queryListSessions = `
		SELECT
			session_id,
			COALESCE((ARRAY_AGG(ref ORDER BY created_at DESC) FILTER (WHERE sender = 'visitor'))[1], ''),
			COALESCE((ARRAY_AGG(display_name ORDER BY created_at DESC) FILTER (WHERE sender = 'visitor'))[1], ''),
			COALESCE((ARRAY_AGG(role_label ORDER BY created_at DESC) FILTER (WHERE sender = 'visitor'))[1], ''),
			MAX(created_at) AS last_at,
			COUNT(*) AS msg_count
		FROM chat_messages
		GROUP BY session_id
		ORDER BY last_at DESC
	`
)
