// Package model содержит доменные сущности сервиса записи МПП.
package model

import "time"

// ServiceDefinition описывает одну государственную услугу из каталога.
// Записи каталога создаются при старте процесса и не изменяются.
type ServiceDefinition struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Icon                   string `json:"icon"`
	Code                   string `json:"code"`
	Description            string `json:"description"`
	EstimatedTimePerPerson int    `json:"estimated_time_per_person"`
}

// User представляет авторизованного посетителя сеанса.
type User struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// TicketStatus описывает статус талона записи.
type TicketStatus string

const (
	TicketStatusBooked    TicketStatus = "booked"
	TicketStatusCompleted TicketStatus = "completed"
)

// Ticket описывает подтверждённую запись с сгенерированным кодом бронирования.
type Ticket struct {
	ID        string       `json:"id"`
	ServiceID string       `json:"service_id"`
	Number    string       `json:"number"`
	Date      string       `json:"date"`
	TimeSlot  string       `json:"time_slot"`
	Timestamp time.Time    `json:"timestamp"`
	Status    TicketStatus `json:"status"`
}

// View описывает один экран приложения; в каждый момент активен ровно один.
type View string

const (
	ViewLogin     View = "login"
	ViewHome      View = "home"
	ViewBooking   View = "booking"
	ViewTicket    View = "ticket"
	ViewAssistant View = "assistant"
	// ViewProfile объявлен в домене состояний, но ни один переход в него
	// не ведёт. Оставлен как известное мёртвое состояние.
	ViewProfile View = "profile"
)

// ChatRole указывает автора сообщения в чате помощника.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage описывает одно сообщение в чате помощника за текущий сеанс.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
