package model

// Activity feed labels and types
const (
	ActionEventRegistered       = "Evento Registrado"
	ActionAnnouncementPublished = "Aviso Publicado"
	ActionNewAppointment        = "Novo Agendamento"
	ActivityTypeEvent           = "evento"
	ActivityTypeAnnouncement    = "aviso"
	ActivityTypeAgenda          = "agenda"
	RecentPerEntity             = 3
	ActivityFeedLimit           = 5
	ActivitySortMultiplier      = 1000
)

// DashboardScope restricts dashboard queries to one owner; nil OwnerID means everything
type DashboardScope struct {
	OwnerID *int
}

type DashboardStats struct {
	Events        int `json:"eventos"`
	Announcements int `json:"avisos"`
	Agenda        int `json:"agenda"`
	Schedules     int `json:"horarios"`
}

// RecentItem is a row candidate for the activity feed
type RecentItem struct {
	ID    int
	Title string
}

type Activity struct {
	Action string `json:"action"`
	Item   string `json:"item"`
	Type   string `json:"type"`
	SortID int    `json:"sort_id"`
}

type Dashboard struct {
	Stats    DashboardStats `json:"stats"`
	Activity []Activity     `json:"activity"`
	UserRole string         `json:"user_role"`
}
