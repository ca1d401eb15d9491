package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/brasas-burger/zapbot/models"
)

type OrchestratorTestSuite struct {
	suite.Suite
	customers *fakeCustomers
	catalog   *fakeCatalog
	carts     *fakeCarts
	messenger *fakeMessenger
	responder *fakeResponder
	orc       *Orchestrator
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.customers = newFakeCustomers()
	s.catalog = newFakeCatalog(
		models.MenuItem{ID: uuid.New(), Name: "Burger Clássico", PriceCents: 1500, IsActive: true},
		models.MenuItem{ID: uuid.New(), Name: "Refrigerante", PriceCents: 500, IsActive: true},
		models.MenuItem{ID: uuid.New(), Name: "X-Burger", PriceCents: 1800, IsActive: true},
	)
	s.carts = newFakeCarts(s.catalog)
	s.messenger = &fakeMessenger{}
	s.responder = &fakeResponder{reply: "Oxente, tudo certo!"}

	s.orc = &Orchestrator{
		Resolver:  &Resolver{Customers: s.customers},
		Flow:      &Flow{States: NewMemRegistrationStore(), Customers: s.customers},
		Cart:      &Engine{Catalog: s.catalog, Carts: s.carts},
		Catalog:   s.catalog,
		Messenger: s.messenger,
		Responder: s.responder,
	}
}

func chatEvent(addr, pushname, text string) Event {
	return Event{
		EventType: EventMessageReceived,
		Data: EventData{
			Type:     MessageTypeChat,
			Body:     text,
			ChatID:   addr,
			Pushname: pushname,
		},
	}
}

func (s *OrchestratorTestSuite) handle(ev Event) Outcome {
	return s.orc.Handle(context.Background(), ev)
}

func (s *OrchestratorTestSuite) seedCustomer(phone, name string) models.Customer {
	c, err := s.customers.Create(context.Background(), phone, name, nil, nil)
	s.Require().NoError(err)
	return c
}

func (s *OrchestratorTestSuite) TestIgnoresWrongEventType() {
	out := s.handle(Event{EventType: "message_ack"})
	s.Equal(StatusIgnored, out.Status)
	s.Empty(s.messenger.sent)
}

func (s *OrchestratorTestSuite) TestIgnoresNonChatMessages() {
	ev := chatEvent("5581999990000@c.us", "", "oi")
	ev.Data.Type = "image"
	out := s.handle(ev)
	s.Equal(StatusIgnored, out.Status)
	s.Empty(s.messenger.sent)
}

func (s *OrchestratorTestSuite) TestMissingPhoneIsTerminal() {
	out := s.handle(chatEvent("@c.us", "Ana", "oi"))
	s.Equal(StatusError, out.Status)
	s.Equal("missing sender phone", out.Detail)
	s.Empty(s.messenger.sent)
}

func (s *OrchestratorTestSuite) TestFreshPhoneNoNameStartsRegistration() {
	out := s.handle(chatEvent("5581999990000@c.us", "", "bom dia"))
	s.Equal(StatusOK, out.Status)
	s.Contains(s.messenger.last(), "me diga seu nome")
	s.True(s.orc.Flow.Active("5581999990000"))
}

func (s *OrchestratorTestSuite) TestMultiTurnRegistrationConversation() {
	addr := "5581999990000@c.us"

	s.handle(chatEvent(addr, "", "oi"))
	s.Contains(s.messenger.last(), "me diga seu nome")

	s.handle(chatEvent(addr, "", "João Silva"))
	s.Contains(s.messenger.last(), "CPF")

	out := s.handle(chatEvent(addr, "", "1234"))
	s.Equal(StatusOK, out.Status)
	s.Contains(s.messenger.last(), "num pareceu certo")

	out = s.handle(chatEvent(addr, "", "123.456.789-00"))
	s.Equal(StatusOK, out.Status)
	s.Contains(s.messenger.last(), "cadastro tá feito")

	c, err := s.customers.FindByPhone(context.Background(), "5581999990000")
	s.Require().NoError(err)
	s.Equal("João Silva", c.Name)
	s.False(s.orc.Flow.Active("5581999990000"))
}

func (s *OrchestratorTestSuite) TestFastPathRegistrationFromDeclaredName() {
	out := s.handle(chatEvent("5581999990000@c.us", "", "meu nome é João Silva, quero um X-Burger"))
	s.Equal(StatusOK, out.Status)

	c, err := s.customers.FindByPhone(context.Background(), "5581999990000")
	s.Require().NoError(err)
	s.Equal("João Silva", c.Name)

	// same message also lands the product in the cart
	s.Contains(s.messenger.last(), "Coloquei *X-Burger*")
	s.Contains(s.messenger.last(), "R$ 18.00")
}

func (s *OrchestratorTestSuite) TestMenuIntent() {
	s.seedCustomer("5581999990000", "Ana")

	out := s.handle(chatEvent("5581999990000@c.us", "", "quero ver o cardápio"))
	s.Equal(StatusOK, out.Status)

	last := s.messenger.last()
	s.Contains(last, "CARDÁPIO DA CASA")
	s.Contains(last, "*Burger Clássico* - R$ 15.00")
	s.Contains(last, "*Refrigerante* - R$ 5.00")
}

func (s *OrchestratorTestSuite) TestAddToCartIntent() {
	s.seedCustomer("5581999990000", "Ana")

	out := s.handle(chatEvent("5581999990000@c.us", "", "quero um x-burger"))
	s.Equal(StatusOK, out.Status)

	last := s.messenger.last()
	s.Contains(last, "Coloquei *X-Burger* (R$ 18.00)")
	s.Contains(last, "SEU CARRINHO")
	s.Contains(last, "1x *X-Burger* - R$ 18.00")
}

func (s *OrchestratorTestSuite) TestAddUnknownProduct() {
	s.seedCustomer("5581999990000", "Ana")

	out := s.handle(chatEvent("5581999990000@c.us", "", "quero uma pizza"))
	s.Equal(StatusOK, out.Status)
	s.Contains(s.messenger.last(), "Num achei 'pizza'")
}

func (s *OrchestratorTestSuite) TestViewEmptyCart() {
	s.seedCustomer("5581999990000", "Ana")

	out := s.handle(chatEvent("5581999990000@c.us", "", "meu carrinho"))
	s.Equal(StatusOK, out.Status)
	s.Contains(s.messenger.last(), "vazio")
}

func (s *OrchestratorTestSuite) TestViewCartAfterAdds() {
	s.seedCustomer("5581999990000", "Ana")

	s.handle(chatEvent("5581999990000@c.us", "", "quero um x-burger"))
	s.handle(chatEvent("5581999990000@c.us", "", "quero um x-burger"))

	out := s.handle(chatEvent("5581999990000@c.us", "", "meu carrinho"))
	s.Equal(StatusOK, out.Status)

	last := s.messenger.last()
	s.Contains(last, "2x *X-Burger* - R$ 36.00")
	s.Contains(last, "*Total: R$ 36.00*")
}

func (s *OrchestratorTestSuite) TestFreeFormDelegation() {
	s.seedCustomer("5581999990000", "Ana")

	out := s.handle(chatEvent("5581999990000@c.us", "", "vocês abrem que horas?"))
	s.Equal(StatusOK, out.Status)
	s.Equal("vocês abrem que horas?", s.responder.lastMessage)
	s.Contains(s.responder.lastContext, "Ana")
	s.Contains(s.messenger.last(), "Oxente, tudo certo!")
}

func (s *OrchestratorTestSuite) TestResponderFailureFallsBack() {
	s.seedCustomer("5581999990000", "Ana")
	s.responder.fail = errors.New("quota exceeded")

	out := s.handle(chatEvent("5581999990000@c.us", "", "bom dia"))
	s.Equal(StatusOK, out.Status)
	s.NotEmpty(s.messenger.sent)
	s.False(strings.Contains(s.messenger.last(), "quota"))
}

func (s *OrchestratorTestSuite) TestSendFailureIsItsOwnOutcome() {
	s.seedCustomer("5581999990000", "Ana")
	s.messenger.fail = errors.New("transport down")

	out := s.handle(chatEvent("5581999990000@c.us", "", "quero ver o cardápio"))
	s.Equal(StatusSendFailed, out.Status)
	s.Contains(out.Detail, "transport down")
}

func (s *OrchestratorTestSuite) TestCustomerLookupFailureApologizes() {
	s.customers.failql = errors.New("connection refused")

	out := s.handle(chatEvent("5581999990000@c.us", "", "oi"))
	s.Equal(StatusError, out.Status)
	s.Contains(out.Detail, "connection refused")
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
