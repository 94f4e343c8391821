package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/application/ports"
	"github.com/orbislink/agrilink-api/internal/application/usecase"
	"github.com/orbislink/agrilink-api/internal/domain/entity"
	"github.com/orbislink/agrilink-api/pkg/config"
	"github.com/orbislink/agrilink-api/pkg/logger"
)

func newPushFixture(sender *fakePushSender) (*usecase.PushUseCase, *fakeSubsRepo) {
	subsRepo := newFakeSubsRepo()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := usecase.NewPushUseCase(subsRepo, sender, config.PushConfig{
		VAPIDPublicKey: "test-public-key",
	}, log)
	return uc, subsRepo
}

func seedSubscription(t *testing.T, repo *fakeSubsRepo, userID, endpoint string) {
	t.Helper()
	require.NoError(t, repo.Upsert(context.Background(), &entity.PushSubscription{
		ID: endpoint + "-id", UserID: userID, Endpoint: endpoint,
		P256dh: "p256dh", Auth: "auth", CreatedAt: time.Now(),
	}))
}

func TestVAPIDPublicKey(t *testing.T) {
	uc, _ := newPushFixture(&fakePushSender{})
	assert.Equal(t, "test-public-key", uc.VAPIDPublicKey().PublicKey)
}

func TestSubscribe_Idempotente(t *testing.T) {
	uc, subsRepo := newPushFixture(&fakePushSender{})

	in := dto.SubscribeRequest{
		Endpoint: "https://push.example/ep-1",
		Keys:     dto.PushKeys{P256dh: "p", Auth: "a"},
	}
	require.NoError(t, uc.Subscribe(context.Background(), "user-1", in))
	require.NoError(t, uc.Subscribe(context.Background(), "user-1", in))

	subs, err := subsRepo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, subs, 1, "subscrever duas vezes o mesmo endpoint não duplica")
}

func TestSend_SemSubscricoes(t *testing.T) {
	sender := &fakePushSender{}
	uc, _ := newPushFixture(sender)

	out, err := uc.Send(context.Background(), dto.SendPushRequest{
		UserID: "user-1", Title: "t", Body: "b",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Sent)
	assert.Equal(t, 0, sender.calls, "sem subscrições não há entrega")
}

// Endpoints mortos (404/410) contam como falha e são removidos; as restantes
// entregas seguem até ao fim.
func TestSend_RemoveEndpointsMortos(t *testing.T) {
	sender := &fakePushSender{results: []ports.PushResult{
		{Endpoint: "https://push.example/vivo", Success: true},
		{Endpoint: "https://push.example/morto", Gone: true, StatusCode: 410},
		{Endpoint: "https://push.example/erro", Error: "timeout"},
	}}
	uc, subsRepo := newPushFixture(sender)
	seedSubscription(t, subsRepo, "user-1", "https://push.example/vivo")
	seedSubscription(t, subsRepo, "user-1", "https://push.example/morto")
	seedSubscription(t, subsRepo, "user-1", "https://push.example/erro")

	out, err := uc.Send(context.Background(), dto.SendPushRequest{
		UserID: "user-1", Title: "Nova encomenda", Body: "Detalhes",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Sent)
	assert.Equal(t, 2, out.Failed)
	assert.Equal(t, 1, out.Removed)
	assert.Equal(t, []string{"https://push.example/morto"}, subsRepo.deleted,
		"só o endpoint 410 é removido; o erro transitório mantém a subscrição")
}

func TestUnsubscribe_RemoveDoUtilizador(t *testing.T) {
	uc, subsRepo := newPushFixture(&fakePushSender{})
	seedSubscription(t, subsRepo, "user-1", "https://push.example/ep-1")

	require.NoError(t, uc.Unsubscribe(context.Background(), "user-1", "https://push.example/ep-1"))

	subs, err := subsRepo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, subs)
}
