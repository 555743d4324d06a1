package storage

// schema statements, applied in order inside one transaction
var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id BIGSERIAL PRIMARY KEY,
		session_id VARCHAR(120) NOT NULL,
		ref VARCHAR(100) NOT NULL DEFAULT 'direct',
		display_name VARCHAR(200) NOT NULL DEFAULT '',
		role_label VARCHAR(200) NOT NULL DEFAULT '',
		sender VARCHAR(10) NOT NULL CHECK (sender IN ('visitor', 'admin')),
		content TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_session_id ON chat_messages (session_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_ref ON chat_messages (ref)`,

	`CREATE TABLE IF NOT EXISTS visits (
		id BIGSERIAL PRIMARY KEY,
		ref VARCHAR(100) NOT NULL DEFAULT 'direct',
		display_name VARCHAR(200) NOT NULL DEFAULT '',
		role_label VARCHAR(200) NOT NULL DEFAULT '',
		action VARCHAR(50) NOT NULL DEFAULT 'page_view',
		client_ip VARCHAR(64) NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		referrer TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_ref ON visits (ref)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_created_at ON visits (created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS leads (
		id BIGSERIAL PRIMARY KEY,
		colegio VARCHAR(200) NOT NULL,
		region VARCHAR(100) NOT NULL DEFAULT '',
		cantidad VARCHAR(50) NOT NULL DEFAULT '',
		decano_phone VARCHAR(50) NOT NULL DEFAULT '',
		admin_phone VARCHAR(50) NOT NULL DEFAULT '',
		treasury_phone VARCHAR(50) NOT NULL DEFAULT '',
		secretary_phone VARCHAR(50) NOT NULL DEFAULT '',
		client_ip VARCHAR(64) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}
