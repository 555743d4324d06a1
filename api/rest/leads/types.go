package leads

type CreateLeadResponse struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
}
