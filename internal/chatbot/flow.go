package chatbot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Pedrolamon/hairdayy-sub000/internal/domain/schedule"
	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
	"github.com/Pedrolamon/hairdayy-sub000/internal/timezone"
	ucAppointment "github.com/Pedrolamon/hairdayy-sub000/internal/usecase/appointment"
)

// ServiceCatalog is the slice of persistence the flow needs beyond the
// booking use cases.
type ServiceCatalog interface {
	ListActiveServices(ctx context.Context, barberID uint) ([]models.Service, error)
}

// Engine drives the WhatsApp-style booking conversation:
// service -> date -> slot -> name -> confirm -> booked.
// Replies are returned to the caller; message delivery is the gateway's
// concern, not ours.
type Engine struct {
	sessions     *SessionStore
	catalog      ServiceCatalog
	availability *ucAppointment.GetAvailability
	create       *ucAppointment.CreateAppointment
}

func NewEngine(
	sessions *SessionStore,
	catalog ServiceCatalog,
	availability *ucAppointment.GetAvailability,
	create *ucAppointment.CreateAppointment,
) *Engine {
	return &Engine{
		sessions:     sessions,
		catalog:      catalog,
		availability: availability,
		create:       create,
	}
}

func (e *Engine) HandleMessage(ctx context.Context, barberID uint, phone, text string) (string, error) {
	text = strings.TrimSpace(text)

	if strings.EqualFold(text, "cancelar") {
		if err := e.sessions.Delete(ctx, phone); err != nil {
			return "", err
		}
		return "Atendimento cancelado. Mande qualquer mensagem para recomeçar.", nil
	}

	sess, err := e.sessions.Get(ctx, phone)
	if err != nil {
		return "", err
	}

	if sess == nil {
		sess = NewSession(barberID, phone)
		reply, err := e.askService(ctx, sess)
		if err != nil {
			return "", err
		}
		if err := e.sessions.Save(ctx, sess); err != nil {
			return "", err
		}
		return reply, nil
	}

	var reply string
	switch sess.Step {
	case StepService:
		reply, err = e.pickService(ctx, sess, text)
	case StepDate:
		reply, err = e.pickDate(ctx, sess, text)
	case StepSlot:
		reply, err = e.pickSlot(sess, text)
	case StepName:
		reply, err = e.pickName(sess, text)
	case StepConfirm:
		reply, err = e.confirm(ctx, sess, text)
	default:
		err = e.sessions.Delete(ctx, phone)
		reply = "Não entendi. Mande qualquer mensagem para começar."
	}
	if err != nil {
		return "", err
	}

	if sess.Step != "" {
		if err := e.sessions.Save(ctx, sess); err != nil {
			return "", err
		}
	}
	return reply, nil
}

func (e *Engine) askService(ctx context.Context, sess *Session) (string, error) {
	services, err := e.catalog.ListActiveServices(ctx, sess.BarberID)
	if err != nil {
		return "", err
	}
	if len(services) == 0 {
		return "Nenhum serviço disponível no momento.", nil
	}

	var b strings.Builder
	b.WriteString("Olá! Qual serviço você quer agendar?\n")
	for i, s := range services {
		fmt.Fprintf(&b, "%d. %s (%d min, R$ %.2f)\n", i+1, s.Name, s.DurationMin, s.Price)
	}
	b.WriteString("Responda com o número.")
	return b.String(), nil
}

func (e *Engine) pickService(ctx context.Context, sess *Session, text string) (string, error) {
	services, err := e.catalog.ListActiveServices(ctx, sess.BarberID)
	if err != nil {
		return "", err
	}

	idx, err := strconv.Atoi(text)
	if err != nil || idx < 1 || idx > len(services) {
		return "Opção inválida. Responda com o número do serviço.", nil
	}

	sess.ServiceID = services[idx-1].ID
	sess.Step = StepDate
	return "Para qual data? (formato AAAA-MM-DD)", nil
}

func (e *Engine) pickDate(ctx context.Context, sess *Session, text string) (string, error) {
	day, err := timezone.ParseDate(text)
	if err != nil {
		return "Data inválida. Use o formato AAAA-MM-DD.", nil
	}

	slots, err := e.availability.Execute(ctx, ucAppointment.AvailabilityInput{
		BarberID:  sess.BarberID,
		ServiceID: sess.ServiceID,
		Date:      day,
	})
	if err != nil {
		return "", err
	}
	if len(slots) == 0 {
		return "Nenhum horário livre nesse dia. Tente outra data (AAAA-MM-DD).", nil
	}

	sess.Date = text
	sess.Slots = slots
	sess.Step = StepSlot

	var b strings.Builder
	b.WriteString("Horários livres:\n")
	for i, s := range slots {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	b.WriteString("Responda com o número do horário.")
	return b.String(), nil
}

func (e *Engine) pickSlot(sess *Session, text string) (string, error) {
	idx, err := strconv.Atoi(text)
	if err != nil || idx < 1 || idx > len(sess.Slots) {
		return "Opção inválida. Responda com o número do horário.", nil
	}

	sess.Slot = sess.Slots[idx-1]
	sess.Step = StepName
	return "Qual o seu nome?", nil
}

func (e *Engine) pickName(sess *Session, text string) (string, error) {
	if len(text) < 2 {
		return "Não entendi o nome. Pode repetir?", nil
	}
	sess.Name = text
	sess.Step = StepConfirm
	return fmt.Sprintf(
		"Confirmando: %s em %s às %s. Responda SIM para confirmar ou NÃO para desistir.",
		sess.Name, sess.Date, sess.Slot,
	), nil
}

func (e *Engine) confirm(ctx context.Context, sess *Session, text string) (string, error) {
	answer := strings.ToLower(text)

	if answer != "sim" && answer != "s" {
		if err := e.sessions.Delete(ctx, sess.Phone); err != nil {
			return "", err
		}
		sess.Step = ""
		return "Tudo bem, agendamento descartado.", nil
	}

	window, err := schedule.ParseRange(sess.Slot)
	if err != nil {
		return "", err
	}

	_, err = e.create.Execute(ctx, ucAppointment.CreateAppointmentInput{
		BarberID:    sess.BarberID,
		Date:        sess.Date,
		StartTime:   window.Start.Clock(),
		EndTime:     window.End.Clock(),
		ServiceIDs:  []uint{sess.ServiceID},
		ClientName:  sess.Name,
		ClientPhone: sess.Phone,
	})
	if err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			// Someone got there first; restart at slot selection.
			sess.Step = StepDate
			return "Esse horário acabou de ser ocupado. Para qual data? (AAAA-MM-DD)", nil
		}
		return "", err
	}

	if err := e.sessions.Delete(ctx, sess.Phone); err != nil {
		return "", err
	}
	sess.Step = ""
	return fmt.Sprintf("Agendado! %s em %s às %s. Até lá!", sess.Name, sess.Date, sess.Slot), nil
}
