package leads

const (
	queryCreateLead = `
		INSERT INTO leads (colegio, region, cantidad, decano_phone, admin_phone, treasury_phone, secretary_phone, client_ip)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, colegio, region, cantidad, decano_phone, admin_phone, treasury_phone, secretary_phone, client_ip, created_at
	`

	queryListLeads = `
		SELECT id, colegio, region, cantidad, decano_phone, admin_phone, treasury_phone, secretary_phone, client_ip, created_at
		FROM leads
		ORDER BY created_at DESC
	`
)
