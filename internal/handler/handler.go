// Package handler содержит HTTP-обработчики API сервиса записи МПП.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mmeshcher/antrian-system/internal/assistant"
	"github.com/mmeshcher/antrian-system/internal/catalog"
	"github.com/mmeshcher/antrian-system/internal/middleware"
	"github.com/mmeshcher/antrian-system/internal/model"
	"github.com/mmeshcher/antrian-system/internal/session"
)

// CancelConfirmMessage — фиксированный текст запроса подтверждения отмены.
// Отмена выполняется только после явного согласия пользователя.
const CancelConfirmMessage = "Apakah Anda yakin ingin membatalkan jadwal reservasi ini?"

// Session определяет контракт машины состояний сеанса, используемый HTTP-обработчиками.
type Session interface {
	Login(u model.User) error
	SelectService(id string) (model.ServiceDefinition, error)
	Back()
	ConfirmBooking(date, timeSlot string) (model.Ticket, error)
	CancelActiveTicket(confirmed bool) error
	Navigate(v model.View) (model.View, error)
	View() model.View
	User() (model.User, bool)
	SelectedService() (model.ServiceDefinition, bool)
	ActiveTicket() (model.Ticket, bool)
	AppendChat(role model.ChatRole, text string) model.ChatMessage
	ChatLog() []model.ChatMessage
}

// QueueCounters отдаёт текущие значения декоративных счётчиков очередей.
type QueueCounters interface {
	Snapshot() map[string]int
}

// Handler реализует HTTP-обработчики API сервиса записи МПП.
type Handler struct {
	session        Session
	catalog        *catalog.Catalog
	counters       QueueCounters
	responder      assistant.Responder
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Session, c *catalog.Catalog, counters QueueCounters, responder assistant.Responder, logger *zap.Logger, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		session:        s,
		catalog:        c,
		counters:       counters,
		responder:      responder,
		logger:         logger,
		authMiddleware: auth,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

type loginRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

type viewResponse struct {
	View model.View `json:"view"`
}

// Login принимает данные посетителя от провайдера аутентификации и открывает сеанс.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	err := h.session.Login(model.User{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
	})
	if err != nil {
		if errors.Is(err, session.ErrEmptyUserName) {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		h.logger.Error("login error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.authMiddleware.SetAuthCookie(w)
	h.writeJSON(w, http.StatusOK, viewResponse{View: h.session.View()})
}

type sessionResponse struct {
	View            model.View  `json:"view"`
	User            *model.User `json:"user,omitempty"`
	HasActiveTicket bool        `json:"has_active_ticket"`
}

// GetSession возвращает сводку текущего состояния сеанса.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	resp := sessionResponse{
		View: h.session.View(),
	}
	if u, ok := h.session.User(); ok {
		resp.User = &u
	}
	_, resp.HasActiveTicket = h.session.ActiveTicket()

	h.writeJSON(w, http.StatusOK, resp)
}

type serviceResponse struct {
	model.ServiceDefinition
	QueueLength int `json:"queue_length"`
}

// GetServices возвращает каталог услуг с текущими счётчиками очередей.
func (h *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	counts := h.counters.Snapshot()

	services := h.catalog.Services()
	resp := make([]serviceResponse, 0, len(services))
	for _, s := range services {
		resp = append(resp, serviceResponse{
			ServiceDefinition: s,
			QueueLength:       counts[s.Code],
		})
	}

	h.writeJSON(w, http.StatusOK, resp)
}

type selectServiceRequest struct {
	ServiceID string `json:"service_id"`
}

type selectServiceResponse struct {
	View      model.View              `json:"view"`
	Service   model.ServiceDefinition `json:"service"`
	TimeSlots []string                `json:"time_slots"`
}

// SelectService начинает запись на выбранную услугу.
func (h *Handler) SelectService(w http.ResponseWriter, r *http.Request) {
	var req selectServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	svc, err := h.session.SelectService(req.ServiceID)
	if err != nil {
		if errors.Is(err, session.ErrUnknownService) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("select service error", zap.Error(err), zap.String("serviceID", req.ServiceID))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, selectServiceResponse{
		View:      h.session.View(),
		Service:   svc,
		TimeSlots: catalog.TimeSlots,
	})
}

// Back возвращает сеанс с экрана записи на главный экран.
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	h.session.Back()
	h.writeJSON(w, http.StatusOK, viewResponse{View: h.session.View()})
}

type confirmBookingRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

type ticketResponse struct {
	View    model.View               `json:"view"`
	Ticket  model.Ticket             `json:"ticket"`
	Service *model.ServiceDefinition `json:"service,omitempty"`
}

// ConfirmBooking подтверждает запись и выпускает талон с кодом бронирования.
func (h *Handler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	var req confirmBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	ticket, err := h.session.ConfirmBooking(req.Date, req.TimeSlot)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoServiceSelected):
			http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
		case errors.Is(err, session.ErrEmptyDate), errors.Is(err, session.ErrInvalidTimeSlot):
			http.Error(w, http.StatusText(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity)
		default:
			h.logger.Error("confirm booking error", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, ticketResponse{
		View:   h.session.View(),
		Ticket: ticket,
	})
}

// GetTicket возвращает активный талон вместе с его услугой.
// Без активного талона сеанс принудительно возвращается на главный экран.
func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticket, ok := h.session.ActiveTicket()
	if !ok {
		view, _ := h.session.Navigate(model.ViewHome)
		h.writeJSON(w, http.StatusOK, viewResponse{View: view})
		return
	}

	svc, ok := h.catalog.ByID(ticket.ServiceID)
	if !ok {
		// Талон ссылается на услугу, которой нет в каталоге. Экран не
		// рисуется вовсе, состояние сеанса не трогаем.
		h.logger.Warn("ticket references unknown service", zap.String("serviceID", ticket.ServiceID))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeJSON(w, http.StatusOK, ticketResponse{
		View:    model.ViewTicket,
		Ticket:  ticket,
		Service: &svc,
	})
}

type cancelTicketRequest struct {
	Confirm bool `json:"confirm"`
}

type cancelPromptResponse struct {
	ConfirmationRequired bool   `json:"confirmation_required"`
	Message              string `json:"message"`
}

// CancelTicket отменяет активный талон после явного подтверждения.
// Запрос без подтверждения возвращает текст запроса подтверждения и ничего не меняет.
func (h *Handler) CancelTicket(w http.ResponseWriter, r *http.Request) {
	var req cancelTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	err := h.session.CancelActiveTicket(req.Confirm)
	if err != nil {
		if errors.Is(err, session.ErrNoActiveTicket) {
			http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
			return
		}
		h.logger.Error("cancel ticket error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if !req.Confirm {
		h.writeJSON(w, http.StatusOK, cancelPromptResponse{
			ConfirmationRequired: true,
			Message:              CancelConfirmMessage,
		})
		return
	}

	h.writeJSON(w, http.StatusOK, viewResponse{View: h.session.View()})
}

type navigateRequest struct {
	View model.View `json:"view"`
}

// Navigate переключает сеанс на запрошенный экран нижней навигации.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	view, err := h.session.Navigate(req.View)
	if err != nil {
		if errors.Is(err, session.ErrInvalidView) {
			http.Error(w, http.StatusText(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity)
			return
		}
		h.logger.Error("navigate error", zap.Error(err), zap.String("view", string(req.View)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, viewResponse{View: view})
}

type assistantRequest struct {
	Text string `json:"text"`
}

// PostAssistantMessage добавляет сообщение пользователя в чат и возвращает ответ помощника.
func (h *Handler) PostAssistantMessage(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Text == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.session.AppendChat(model.ChatRoleUser, req.Text)

	reply, err := h.responder.Reply(r.Context(), req.Text)
	if err != nil {
		h.logger.Error("assistant reply error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	msg := h.session.AppendChat(model.ChatRoleModel, reply)
	h.writeJSON(w, http.StatusOK, msg)
}

// GetAssistantMessages возвращает журнал чата помощника за текущий сеанс.
func (h *Handler) GetAssistantMessages(w http.ResponseWriter, r *http.Request) {
	messages := h.session.ChatLog()
	if len(messages) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeJSON(w, http.StatusOK, messages)
}
