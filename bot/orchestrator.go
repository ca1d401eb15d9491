package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/brasas-burger/zapbot/models"
)

const (
	EventMessageReceived = "message_received"
	MessageTypeChat      = "chat"
)

// Event is the inbound webhook payload. Unknown discriminators are
// ignored, not rejected.
type Event struct {
	EventType string    `json:"event_type"`
	Data      EventData `json:"data"`
}

type EventData struct {
	Type     string `json:"type"`
	Body     string `json:"body"`
	ChatID   string `json:"chatId"`
	From     string `json:"from"`
	Pushname string `json:"pushname"`
}

type Status string

const (
	// StatusOK: a reply was decided and delivered.
	StatusOK Status = "ok"
	// StatusIgnored: wrong event or message type, no side effect.
	StatusIgnored Status = "ignored"
	// StatusError: the decision itself failed (bad input or dependency).
	StatusError Status = "error"
	// StatusSendFailed: the reply was decided but the transport failed.
	StatusSendFailed Status = "send_failed"
)

type Outcome struct {
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

const (
	registerFailedMsg = "Eita! Deu um problema aqui. Me diga seu nome pra eu te cadastrar direitinho."
	cartFailedMsg     = "Eita! Deu problema pra adicionar no carrinho. Tenta de novo, visse?"
	genericFailedMsg  = "Vixe, deu um problema aqui do meu lado. Tenta de novo daqui a pouquinho, visse?"
	emptyCartMsg      = "Teu carrinho tá vazio ainda, meu rei! Quer dar uma olhada no cardápio?"
)

// Orchestrator sequences one inbound event: resolve identity, drive
// registration when incomplete, classify intent, dispatch, reply.
type Orchestrator struct {
	Resolver  *Resolver
	Flow      *Flow
	Cart      *Engine
	Catalog   CatalogStore
	Messenger Messenger
	Responder Responder
}

func (o *Orchestrator) Handle(ctx context.Context, ev Event) Outcome {
	if ev.EventType != EventMessageReceived {
		return Outcome{Status: StatusIgnored, Detail: fmt.Sprintf("event %q", ev.EventType)}
	}
	if ev.Data.Type != MessageTypeChat {
		return Outcome{Status: StatusIgnored, Detail: fmt.Sprintf("message type %q", ev.Data.Type)}
	}

	text := strings.TrimSpace(ev.Data.Body)
	addr := ev.Data.ChatID
	if addr == "" {
		addr = ev.Data.From
	}

	phone, customer, err := o.Resolver.Lookup(ctx, addr)
	if errors.Is(err, ErrNoPhone) {
		logrus.Printf("webhook payload has no sender phone (chatId=%q from=%q)", ev.Data.ChatID, ev.Data.From)
		return Outcome{Status: StatusError, Detail: "missing sender phone"}
	}

	if err == nil {
		// registration state must not outlive the customer
		o.Flow.States.Delete(phone)
		return o.customerTurn(ctx, phone, customer, "", text)
	}

	if !errors.Is(err, models.ErrNotFound) {
		return o.apologize(ctx, phone, genericFailedMsg, fmt.Errorf("customer lookup: %w", err))
	}

	if o.Flow.Active(phone) {
		reply, found, aerr := o.Flow.Advance(ctx, phone, text)
		if aerr != nil {
			return o.apologize(ctx, phone, registerFailedMsg, fmt.Errorf("registration: %w", aerr))
		}
		if found != nil {
			logrus.Printf("registration finished for phone %s (customer %s)", phone, found.ID)
		}
		return o.send(ctx, phone, reply)
	}

	res, err := o.Resolver.Resolve(ctx, addr, ev.Data.Pushname, text)
	if err != nil {
		return o.apologize(ctx, phone, registerFailedMsg, fmt.Errorf("fast-path registration: %w", err))
	}
	if res.AskName {
		return o.send(ctx, phone, o.Flow.Begin(phone))
	}
	return o.customerTurn(ctx, phone, *res.Customer, res.Greeting, text)
}

func (o *Orchestrator) customerTurn(ctx context.Context, phone string, c models.Customer, greeting, text string) Outcome {
	intent := Classify(text)

	switch intent.Kind {
	case IntentMenu:
		items, err := o.Catalog.ListActive(ctx)
		if err != nil {
			return o.apologize(ctx, phone, genericFailedMsg, fmt.Errorf("list menu: %w", err))
		}
		return o.send(ctx, phone, FormatMenu(items))

	case IntentViewCart:
		cart, err := o.Cart.Carts.FindOpenByCustomer(ctx, c.ID)
		if errors.Is(err, models.ErrNotFound) {
			return o.send(ctx, phone, emptyCartMsg)
		}
		if err != nil {
			return o.apologize(ctx, phone, genericFailedMsg, fmt.Errorf("find cart: %w", err))
		}
		lines, err := o.Cart.ListItems(ctx, cart.ID)
		if err != nil {
			return o.apologize(ctx, phone, genericFailedMsg, fmt.Errorf("list cart: %w", err))
		}
		return o.send(ctx, phone, FormatCart(lines))

	case IntentAddToCart:
		item, lines, err := o.Cart.Add(ctx, c.ID, intent.Product, 1)
		if errors.Is(err, ErrProductNotFound) {
			// not an error: the reference just didn't match the menu
			reply := fmt.Sprintf("Oxente! Num achei '%s' no cardápio não. Quer ver o que tem disponível?", intent.Product)
			return o.send(ctx, phone, reply)
		}
		if err != nil {
			return o.apologize(ctx, phone, cartFailedMsg, fmt.Errorf("add to cart: %w", err))
		}
		reply := fmt.Sprintf("Oxente! Coloquei *%s* (%s) no teu carrinho!", item.Name, FormatPrice(item.PriceCents))
		reply += "\n\n" + FormatCart(lines)
		return o.send(ctx, phone, reply)
	}

	contextStr := greeting
	if contextStr == "" {
		contextStr = fmt.Sprintf("Cliente: %s. Responda como atendente simpático de hamburgueria.", c.Name)
	}
	reply, err := o.Responder.Complete(ctx, text, contextStr)
	if err != nil {
		logrus.WithError(err).Error("completion service failed")
		reply = genericFailedMsg
	}
	return o.send(ctx, phone, reply)
}

// send delivers the decided reply. Transport failure is its own outcome
// class: the decision was right, the customer just never heard it.
func (o *Orchestrator) send(ctx context.Context, phone, text string) Outcome {
	if err := o.Messenger.Send(ctx, phone, text); err != nil {
		logrus.WithError(err).Errorf("failed to send message to %s", phone)
		return Outcome{Status: StatusSendFailed, Detail: err.Error()}
	}
	return Outcome{Status: StatusOK}
}

// apologize reports a decision failure: log the cause, best-effort deliver an
// apology, surface the error in the outcome.
func (o *Orchestrator) apologize(ctx context.Context, phone, msg string, cause error) Outcome {
	logrus.WithError(cause).Error("failed to handle message")
	if err := o.Messenger.Send(ctx, phone, msg); err != nil {
		logrus.WithError(err).Errorf("failed to send apology to %s", phone)
	}
	return Outcome{Status: StatusError, Detail: cause.Error()}
}
