// Package session реализует машину состояний пользовательского сеанса записи МПП.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmeshcher/antrian-system/internal/catalog"
	"github.com/mmeshcher/antrian-system/internal/model"
)

// ErrEmptyUserName возвращается при попытке входа без имени пользователя.
var (
	ErrEmptyUserName = errors.New("user name is empty")
	// ErrUnknownService возвращается, если идентификатор услуги отсутствует в каталоге.
	ErrUnknownService = errors.New("service not found in catalog")
	// ErrNoServiceSelected возвращается при подтверждении записи без выбранной услуги.
	ErrNoServiceSelected = errors.New("no service selected")
	// ErrEmptyDate возвращается при подтверждении записи с пустой датой.
	ErrEmptyDate = errors.New("booking date is empty")
	// ErrInvalidTimeSlot возвращается, если окно приёма не входит в фиксированный список.
	ErrInvalidTimeSlot = errors.New("time slot is not allowed")
	// ErrNoActiveTicket возвращается при отмене, когда активный талон отсутствует.
	ErrNoActiveTicket = errors.New("no active ticket")
	// ErrInvalidView возвращается при навигации в недоступный экран.
	ErrInvalidView = errors.New("view is not reachable by navigation")
)

// Rand поставляет равномерно распределённые целые числа для генерации
// кода бронирования. Криптографическая стойкость не требуется.
type Rand interface {
	Intn(n int) int
}

// Session хранит состояние одного пользовательского сеанса: посетителя,
// текущий экран, выбранную услугу и единственный активный талон.
// Все мутации проходят через методы и сериализуются мьютексом.
type Session struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	rnd     Rand
	now     func() time.Time

	user     *model.User
	view     model.View
	selected *model.ServiceDefinition
	ticket   *model.Ticket
	chat     []model.ChatMessage
}

// New создаёт сеанс в начальном состоянии (экран входа, всё остальное пусто).
// Нулевые rnd и now заменяются источником math/rand и системными часами.
func New(c *catalog.Catalog, rnd Rand, now func() time.Time) *Session {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Session{
		catalog: c,
		rnd:     rnd,
		now:     now,
		view:    model.ViewLogin,
	}
}

// Login сохраняет посетителя и переводит сеанс на главный экран.
func (s *Session) Login(u model.User) error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyUserName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &u
	s.view = model.ViewHome
	return nil
}

// SelectService запоминает выбранную услугу и открывает экран записи.
func (s *Session) SelectService(id string) (model.ServiceDefinition, error) {
	svc, ok := s.catalog.ByID(id)
	if !ok {
		return model.ServiceDefinition{}, ErrUnknownService
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = &svc
	s.view = model.ViewBooking
	return svc, nil
}

// Back возвращает сеанс с экрана записи на главный и сбрасывает выбор услуги.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = nil
	s.view = model.ViewHome
}

// ConfirmBooking создаёт талон по выбранной услуге, дате и окну приёма.
// Новый талон замещает предыдущий активный; история не ведётся.
// При любом нарушении предусловий состояние сеанса не меняется.
func (s *Session) ConfirmBooking(date, timeSlot string) (model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == nil {
		return model.Ticket{}, ErrNoServiceSelected
	}
	if date == "" {
		return model.Ticket{}, ErrEmptyDate
	}
	if !catalog.IsValidTimeSlot(timeSlot) {
		return model.Ticket{}, ErrInvalidTimeSlot
	}

	ticket := model.Ticket{
		ID:        uuid.NewString(),
		ServiceID: s.selected.ID,
		Number:    bookingCode(s.selected.Code, s.rnd, date),
		Date:      date,
		TimeSlot:  timeSlot,
		Timestamp: s.now(),
		Status:    model.TicketStatusBooked,
	}

	s.ticket = &ticket
	s.selected = nil
	s.view = model.ViewTicket
	return ticket, nil
}

// bookingCode собирает код бронирования: буква услуги, трёхзначное случайное
// число и две последние цифры даты (день месяца при формате YYYY-MM-DD).
func bookingCode(serviceCode string, rnd Rand, date string) string {
	n := 100 + rnd.Intn(900)
	day := date
	if len(date) > 2 {
		day = date[len(date)-2:]
	}
	return fmt.Sprintf("%s%d-%s", serviceCode, n, day)
}

// CancelActiveTicket удаляет активный талон после подтверждения пользователем.
// Без подтверждения состояние не меняется.
func (s *Session) CancelActiveTicket(confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticket == nil {
		return ErrNoActiveTicket
	}
	if !confirmed {
		return nil
	}

	s.ticket = nil
	s.view = model.ViewHome
	return nil
}

// Navigate переключает сеанс между экранами home, ticket и assistant.
// Переход к талону без активного талона приводит на главный экран.
func (s *Session) Navigate(v model.View) (model.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch v {
	case model.ViewHome, model.ViewAssistant:
		s.view = v
	case model.ViewTicket:
		if s.ticket == nil {
			s.view = model.ViewHome
		} else {
			s.view = model.ViewTicket
		}
	default:
		return s.view, ErrInvalidView
	}
	return s.view, nil
}

// View возвращает текущий экран. Если состояние указывает на экран талона,
// а талона нет, сеанс возвращается на главный экран вместо показа
// недопустимого экрана.
func (s *Session) View() model.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view == model.ViewTicket && s.ticket == nil {
		s.view = model.ViewHome
	}
	return s.view
}

// User возвращает посетителя сеанса, если вход выполнен.
func (s *Session) User() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// SelectedService возвращает услугу, выбранную для записи.
func (s *Session) SelectedService() (model.ServiceDefinition, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == nil {
		return model.ServiceDefinition{}, false
	}
	return *s.selected, true
}

// ActiveTicket возвращает единственный активный талон сеанса.
func (s *Session) ActiveTicket() (model.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticket == nil {
		return model.Ticket{}, false
	}
	return *s.ticket, true
}

// AppendChat добавляет сообщение в журнал чата помощника и возвращает его.
func (s *Session) AppendChat(role model.ChatRole, text string) model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: s.now(),
	}
	s.chat = append(s.chat, msg)
	return msg
}

// ChatLog возвращает копию журнала чата помощника.
func (s *Session) ChatLog() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ChatMessage, len(s.chat))
	copy(out, s.chat)
	return out
}
