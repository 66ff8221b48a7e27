package model

// AgendaItem is a calendar entry, optionally exposed publicly as a schedule entry
type AgendaItem struct {
	ID          int     `json:"id"`
	Title       string  `json:"titulo"`
	Type        string  `json:"tipo"`
	Date        *string `json:"data"`
	Location    string  `json:"local"`
	Time        string  `json:"horario"`
	Description *string `json:"descricao"`
	IsPublic    bool    `json:"is_public"`
	Weekday     *string `json:"dia_semana,omitempty"`
	OwnerID     *int    `json:"criado_por"`
}

func (a *AgendaItem) Owner() *int { return a.OwnerID }

type AgendaRequest struct {
	Title       string  `json:"titulo" binding:"required,max=60"`
	Type        string  `json:"tipo" binding:"max=45"`
	Date        string  `json:"data" binding:"required,isodate"`
	Location    string  `json:"local" binding:"max=45"`
	Time        string  `json:"horario" binding:"required,clock"`
	Description *string `json:"descricao"`
}

// Schedule is the public view of an agenda item
type Schedule struct {
	ID       int     `json:"id"`
	Weekday  *string `json:"dia"`
	Title    string  `json:"titulo"`
	Time     string  `json:"horario"`
	Location string  `json:"local"`
}

// ScheduleFromAgenda projects a public agenda item onto the schedule view
func ScheduleFromAgenda(a *AgendaItem) Schedule {
	return Schedule{
		ID:       a.ID,
		Weekday:  a.Weekday,
		Title:    a.Title,
		Time:     a.Time,
		Location: a.Location,
	}
}

type CreateScheduleRequest struct {
	Title    string `json:"titulo" binding:"required,max=60"`
	Weekday  string `json:"dia" binding:"required,max=45"`
	Time     string `json:"horario" binding:"required,clock"`
	Location string `json:"local" binding:"max=45"`
}

type UpdateScheduleRequest struct {
	Title    *string `json:"titulo,omitempty" binding:"omitempty,max=60"`
	Weekday  *string `json:"dia,omitempty" binding:"omitempty,max=45"`
	Time     *string `json:"horario,omitempty" binding:"omitempty,clock"`
	Location *string `json:"local,omitempty" binding:"omitempty,max=45"`
}
