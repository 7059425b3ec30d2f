package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

type fakeTrainer struct {
	got     []ports.TrainRequest
	retrain int
	err     error
}

func (f *fakeTrainer) Train(_ context.Context, req ports.TrainRequest) error {
	f.got = append(f.got, req)
	return f.err
}

func (f *fakeTrainer) RetrainAll(context.Context) (int, error) {
	f.retrain++
	return 3, f.err
}

func TestHandleTrain_DecodificaPayload(t *testing.T) {
	tr := &fakeTrainer{}
	h := NewHandlers(tr, logger.Nop())
	payload, err := json.Marshal(ports.TrainRequest{CompanyID: "c1", ProductID: "p1", TimeUnit: "week", DaysHistory: 120})
	require.NoError(t, err)

	require.NoError(t, h.HandleTrain(context.Background(), asynq.NewTask(TypeTrainModel, payload)))
	require.Len(t, tr.got, 1)
	assert.Equal(t, ports.TrainRequest{CompanyID: "c1", ProductID: "p1", TimeUnit: "week", DaysHistory: 120}, tr.got[0])
}

func TestHandleTrain_PayloadInvalidoNoSeReintenta(t *testing.T) {
	tr := &fakeTrainer{}
	h := NewHandlers(tr, logger.Nop())

	err := h.HandleTrain(context.Background(), asynq.NewTask(TypeTrainModel, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, tr.got)
}

func TestHandleRetrainAll_PropagaError(t *testing.T) {
	tr := &fakeTrainer{}
	h := NewHandlers(tr, logger.Nop())
	require.NoError(t, h.HandleRetrainAll(context.Background(), asynq.NewTask(TypeRetrainAll, nil)))

	tr.err = errors.New("db caída")
	assert.Error(t, h.HandleRetrainAll(context.Background(), asynq.NewTask(TypeRetrainAll, nil)))
	assert.Equal(t, 2, tr.retrain)
}

func TestRegister_RutasDelMux(t *testing.T) {
	tr := &fakeTrainer{}
	mux := asynq.NewServeMux()
	NewHandlers(tr, logger.Nop()).Register(mux)

	require.NoError(t, mux.ProcessTask(context.Background(), asynq.NewTask(TypeRetrainAll, nil)))
	assert.Equal(t, 1, tr.retrain)
}
