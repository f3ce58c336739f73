package services

import (
	"careconnect/models"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatRepo struct {
	chats    map[uint]*models.Chat
	messages map[uint][]models.ChatMessage
	nextChat uint
	nextMsg  uint
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[uint]*models.Chat),
		messages: make(map[uint][]models.ChatMessage),
		nextChat: 1,
		nextMsg:  1,
	}
}

func (f *fakeChatRepo) GetByAppointmentID(ctx context.Context, appointmentID uint) (*models.Chat, error) {
	for _, chat := range f.chats {
		if chat.AppointmentID == appointmentID {
			return chat, nil
		}
	}
	return nil, nil
}

func (f *fakeChatRepo) GetByID(ctx context.Context, id uint) (*models.Chat, error) {
	return f.chats[id], nil
}

func (f *fakeChatRepo) Create(ctx context.Context, chat *models.Chat) error {
	chat.ID = f.nextChat
	f.nextChat++
	f.chats[chat.ID] = chat
	return nil
}

func (f *fakeChatRepo) CreateMessage(ctx context.Context, message *models.ChatMessage) error {
	message.ID = f.nextMsg
	f.nextMsg++
	f.messages[message.ChatID] = append(f.messages[message.ChatID], *message)
	return nil
}

func (f *fakeChatRepo) ListMessages(ctx context.Context, chatID uint) ([]models.ChatMessage, error) {
	return f.messages[chatID], nil
}

type recordingPublisher struct {
	channels []string
	events   []string
	payloads []interface{}
	err      error
}

func (p *recordingPublisher) Publish(channel, event string, data interface{}) error {
	p.channels = append(p.channels, channel)
	p.events = append(p.events, event)
	p.payloads = append(p.payloads, data)
	return p.err
}

type chatFixture struct {
	svc       *ChatService
	chats     *fakeChatRepo
	appts     *fakeAppointmentRepo
	publisher *recordingPublisher
}

func newChatFixture(t *testing.T, status string) *chatFixture {
	t.Helper()
	appts := newFakeAppointmentRepo()
	appts.appointments[1] = &models.Appointment{ID: 1, DoctorID: "doc-1", PatientID: "pat-1", Status: status}
	chats := newFakeChatRepo()
	publisher := &recordingPublisher{}
	return &chatFixture{
		svc:       NewChatService(chats, appts, publisher),
		chats:     chats,
		appts:     appts,
		publisher: publisher,
	}
}

func TestOpenChatCreatesOnFirstUse(t *testing.T) {
	f := newChatFixture(t, models.AppointmentConfirmed)

	chat, err := f.svc.OpenChat(context.Background(), 1, "pat-1")
	require.NoError(t, err)
	assert.Equal(t, uint(1), chat.AppointmentID)
	assert.Equal(t, "doc-1", chat.DoctorID)
	assert.Equal(t, "pat-1", chat.PatientID)

	// the doctor opening later gets the same chat
	again, err := f.svc.OpenChat(context.Background(), 1, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, chat.ID, again.ID)
	assert.Len(t, f.chats.chats, 1)
}

func TestOpenChatRequiresConfirmedAppointment(t *testing.T) {
	for _, status := range []string{models.AppointmentPending, models.AppointmentCancelled} {
		f := newChatFixture(t, status)
		_, err := f.svc.OpenChat(context.Background(), 1, "pat-1")
		assert.ErrorIs(t, err, ErrForbidden, "status %s", status)
	}

	// completed appointments keep their chat accessible
	f := newChatFixture(t, models.AppointmentCompleted)
	_, err := f.svc.OpenChat(context.Background(), 1, "pat-1")
	assert.NoError(t, err)
}

func TestOpenChatParticipantsOnly(t *testing.T) {
	f := newChatFixture(t, models.AppointmentConfirmed)

	_, err := f.svc.OpenChat(context.Background(), 1, "pat-2")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.OpenChat(context.Background(), 99, "pat-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSendMessagePersistsThenPublishes(t *testing.T) {
	f := newChatFixture(t, models.AppointmentConfirmed)
	chat, err := f.svc.OpenChat(context.Background(), 1, "pat-1")
	require.NoError(t, err)

	message, err := f.svc.SendMessage(context.Background(), chat.ID, "pat-1", "Asha", "patient", "  hello doctor  ")
	require.NoError(t, err)
	assert.Equal(t, "hello doctor", message.Content)

	require.Len(t, f.publisher.channels, 1)
	assert.Equal(t, ChannelName(chat.ID), f.publisher.channels[0])
	assert.Equal(t, "new-message", f.publisher.events[0])
	assert.Equal(t, message, f.publisher.payloads[0])

	stored, err := f.svc.Messages(context.Background(), chat.ID, "doc-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "hello doctor", stored[0].Content)
}

func TestSendMessageSurvivesPublishFailure(t *testing.T) {
	f := newChatFixture(t, models.AppointmentConfirmed)
	chat, err := f.svc.OpenChat(context.Background(), 1, "pat-1")
	require.NoError(t, err)

	f.publisher.err = errors.New("transport down")
	message, err := f.svc.SendMessage(context.Background(), chat.ID, "doc-1", "Dr. Mehta", "doctor", "hi")
	require.NoError(t, err)
	assert.NotZero(t, message.ID)

	// the message is still on record
	stored, _ := f.chats.ListMessages(context.Background(), chat.ID)
	assert.Len(t, stored, 1)
}

func TestSendMessageValidation(t *testing.T) {
	f := newChatFixture(t, models.AppointmentConfirmed)
	chat, err := f.svc.OpenChat(context.Background(), 1, "pat-1")
	require.NoError(t, err)

	_, err = f.svc.SendMessage(context.Background(), chat.ID, "pat-1", "Asha", "patient", "   ")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = f.svc.SendMessage(context.Background(), chat.ID, "pat-2", "Eve", "patient", "hi")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.SendMessage(context.Background(), 42, "pat-1", "Asha", "patient", "hi")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChannelName(t *testing.T) {
	assert.Equal(t, "chat-7", ChannelName(7))
}
