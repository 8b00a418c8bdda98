package pharmatrackserver

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	assistanthttpmapper "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/adapters/http/mapper"
)

type recordingGenerator struct {
	mu      sync.Mutex
	answer  string
	prompts []string
}

func (g *recordingGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.answer, nil
}

func (g *recordingGenerator) lastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.prompts) == 0 {
		return ""
	}
	return g.prompts[len(g.prompts)-1]
}

func TestAssistantUnavailableWithoutGenerator(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, request{method: http.MethodPost, path: "/v1/assistant/chat",
		body: map[string]any{"history": []map[string]any{{"role": "user", "content": "hello"}}}})
	requireProblem(t, rec, http.StatusServiceUnavailable)

	rec = srv.do(t, request{method: http.MethodPost, path: "/v1/assistant/side-effects", body: map[string]any{"medicineName": "Paracetamol"}})
	requireProblem(t, rec, http.StatusServiceUnavailable)
}

func TestAssistantChatUsesApprovedCatalog(t *testing.T) {
	gen := &recordingGenerator{answer: "Paracetamol is in stock."}
	srv := newTestServer(t, withGenerator(gen))
	maker := srv.signIn(t, "maker@pharmatrack.test", string(RoleManufacturer))
	admin := srv.signIn(t, "admin@pharmatrack.test", string(RoleAdmin))

	approved := createMedicine(t, srv, maker, "Paracetamol", 120)
	createMedicine(t, srv, maker, "Unlisted Tonic", 10)
	rec := srv.do(t, request{method: http.MethodPost, path: "/v1/medicines/" + approved.ID + "/approve", token: admin})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, request{method: http.MethodPost, path: "/v1/assistant/chat", body: map[string]any{"history": []map[string]any{
		{"role": "user", "content": "Do you have paracetamol?"},
	}}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	reply := decode[assistanthttpmapper.ChatResponse](t, rec)
	require.Equal(t, "Paracetamol is in stock.", reply.Response)
	require.Equal(t, "assistant", reply.Message.Role)

	prompt := gen.lastPrompt()
	require.Contains(t, prompt, "- Name: Paracetamol")
	require.Contains(t, prompt, "user: Do you have paracetamol?")
	require.NotContains(t, prompt, "Unlisted Tonic")
}

func TestAssistantChatValidation(t *testing.T) {
	srv := newTestServer(t, withGenerator(&recordingGenerator{answer: "ok"}))

	rec := srv.do(t, request{method: http.MethodPost, path: "/v1/assistant/chat", body: map[string]any{"history": []map[string]any{}}})
	requireProblem(t, rec, http.StatusBadRequest)

	rec = srv.do(t, request{method: http.MethodPost, path: "/v1/assistant/chat", body: map[string]any{"history": []map[string]any{
		{"role": "user", "content": "hi"},
		{"role": "assistant", "content": "hello"},
	}}})
	requireProblem(t, rec, http.StatusBadRequest)

	rec = srv.do(t, request{method: http.MethodPost, path: "/v1/assistant/chat", body: map[string]any{"history": []map[string]any{
		{"role": "pharmacist", "content": "hi"},
	}}})
	requireProblem(t, rec, http.StatusBadRequest)
}

func TestAssistantSideEffects(t *testing.T) {
	gen := &recordingGenerator{answer: "May cause drowsiness."}
	srv := newTestServer(t, withGenerator(gen))

	rec := srv.do(t, request{method: http.MethodPost, path: "/v1/assistant/side-effects", body: map[string]any{"medicineName": "Cetirizine"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	reply := decode[assistanthttpmapper.SideEffectsResponse](t, rec)
	require.Equal(t, "Cetirizine", reply.MedicineName)
	require.Equal(t, "May cause drowsiness.", reply.SideEffects)
	require.Contains(t, gen.lastPrompt(), "Medicine Name: Cetirizine")

	rec = srv.do(t, request{method: http.MethodPost, path: "/v1/assistant/side-effects", body: map[string]any{"medicineName": ""}})
	requireProblem(t, rec, http.StatusBadRequest)
}
