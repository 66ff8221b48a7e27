package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Capacity modes as sent by the frontend
const (
	CapacityUnlimited = "aberta"
	CapacityLimited   = "limitada"

	// accepted on input and stored as CapacityUnlimited
	capacityUnlimitedAlias = "ilimitada"
)

// NormalizeCapacityMode maps the accepted spellings of a capacity mode to the
// stored value. An empty mode means unlimited. ok is false for unknown modes.
func NormalizeCapacityMode(mode string) (normalized string, ok bool) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", CapacityUnlimited, capacityUnlimitedAlias:
		return CapacityUnlimited, true
	case CapacityLimited:
		return CapacityLimited, true
	}
	return "", false
}

// FlexInt is an optional integer that also decodes from a numeric string.
// null and "" decode to an unset value; forms post numbers as strings.
type FlexInt struct {
	Value int
	Valid bool
}

// IntPtr returns nil when unset
func (n FlexInt) IntPtr() *int {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*n = FlexInt{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("valor inteiro inválido: %s", data)
	}
	n.Value, n.Valid = v, true
	return nil
}

func (n FlexInt) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(n.Value)), nil
}

// Event is a scheduled happening with optional limited-capacity registration
type Event struct {
	ID              int     `json:"id"`
	Title           string  `json:"titulo"`
	Type            string  `json:"tipo"`
	Location        string  `json:"local"`
	CapacityMode    string  `json:"tipo_vagas"`
	Capacity        *int    `json:"numero_vagas"`
	Date            string  `json:"data"`    // YYYY-MM-DD
	Time            string  `json:"horario"` // HH:MM:SS
	Description     *string `json:"descricao"`
	OwnerID         *int    `json:"criado_por"`
	RegisteredCount int     `json:"registered_count"`
}

func (e *Event) Owner() *int { return e.OwnerID }

// IsLimited reports whether registrations are bounded by Capacity
func (e *Event) IsLimited() bool {
	return e.CapacityMode == CapacityLimited && e.Capacity != nil
}

// EventRequest carries the editable fields of an event for create and full update
type EventRequest struct {
	Title        string  `json:"titulo" binding:"required,max=45"`
	Type         string  `json:"tipo" binding:"required,max=45"`
	Location     string  `json:"local" binding:"required,max=45"`
	CapacityMode string  `json:"tipo_vagas" binding:"omitempty,capacitymode"`
	Capacity     FlexInt `json:"numero_vagas"`
	Date         string  `json:"data" binding:"required,isodate"`
	Time         string  `json:"horario" binding:"required,clock"`
	Description  *string `json:"descricao"`
}

// Registration is a person's sign-up record against one event
type Registration struct {
	ID        int       `json:"id"`
	EventID   int       `json:"evento_id"`
	Name      string    `json:"nome"`
	Phone     string    `json:"telefone"`
	CreatedAt time.Time `json:"data_inscricao"`
}

type RegistrationRequest struct {
	Name  string `json:"nome" binding:"required,max=150"`
	Phone string `json:"telefone" binding:"required,max=13"`
}
