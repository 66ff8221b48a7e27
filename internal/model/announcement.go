package model

// Announcement is a published notice
type Announcement struct {
	ID          int     `json:"id"`
	Title       string  `json:"titulo"`
	Category    string  `json:"categoria"`
	URL         *string `json:"url"`
	Description *string `json:"descricao"`
	Date        string  `json:"data"`
	OwnerID     *int    `json:"criado_por"`
}

func (a *Announcement) Owner() *int { return a.OwnerID }

type CreateAnnouncementRequest struct {
	Title       string  `json:"titulo" binding:"required,max=100"`
	Category    string  `json:"categoria" binding:"required,max=45"`
	URL         *string `json:"url" binding:"omitempty,max=250"`
	Description *string `json:"descricao"`
	Date        string  `json:"data" binding:"required,isodate"`
}

// UpdateAnnouncementRequest keeps the current value for every absent field
type UpdateAnnouncementRequest struct {
	Title       *string `json:"titulo,omitempty" binding:"omitempty,max=100"`
	Category    *string `json:"categoria,omitempty" binding:"omitempty,max=45"`
	URL         *string `json:"url,omitempty" binding:"omitempty,max=250"`
	Description *string `json:"descricao,omitempty"`
	Date        *string `json:"data,omitempty" binding:"omitempty,isodate"`
}
