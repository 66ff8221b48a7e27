package model

// ContactRequest is a message submitted through the public contact form
type ContactRequest struct {
	Name    string  `json:"nome" binding:"required,max=150"`
	Email   string  `json:"email" binding:"required,email,max=150"`
	Phone   *string `json:"telefone" binding:"omitempty,max=13"`
	Subject string  `json:"assunto" binding:"required,max=150"`
	Message string  `json:"mensagem" binding:"required,max=5000"`
}
