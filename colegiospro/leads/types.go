package leads

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, req *CreateLeadRequest, clientIP string) (*Lead, error)
	List(ctx context.Context) ([]*Lead, error)
}

// a contact-form submission from a professional association
type Lead struct {
	ID             int64     `json:"id"`
	Colegio        string    `json:"colegio"`
	Region         string    `json:"region"`
	Cantidad       string    `json:"cantidad"`
	DecanoPhone    string    `json:"decano"`
	AdminPhone     string    `json:"admin"`
	TreasuryPhone  string    `json:"tesoreria"`
	SecretaryPhone string    `json:"secretaria"`
	ClientIP       string    `json:"-"`
	CreatedAt      time.Time `json:"fecha"`
}

type CreateLeadRequest struct {
	Colegio    string `json:"colegio" binding:"required,max=200"`
	Region     string `json:"region" binding:"max=100"`
	Cantidad   string `json:"cantidad" binding:"max=50"`
	Decano     string `json:"decano" binding:"max=50"`
	Admin      string `json:"admin" binding:"max=50"`
	Tesoreria  string `json:"tesoreria" binding:"max=50"`
	Secretaria string `json:"secretaria" binding:"max=50"`
}
