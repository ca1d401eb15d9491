package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brasas-burger/zapbot/bot"
)

const (
	groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	groqTimeout  = 60 * time.Second

	systemPrompt = "Você é um atendente virtual simpático de uma hamburgueria/restaurante chamado Brasas. " +
		"Responda em português, com carinho, simplicidade e algumas expressões regionais, " +
		"mas mantendo clareza e profissionalismo. Não exagere na gíria a ponto de dificultar entendimento. " +
		"Você pode ajudar com: cardápio, pedidos, carrinho, dúvidas sobre produtos. " +
		"Seja prestativo e alegre, como um bom nordestino!"

	missingKeyMsg = "Configuração de LLM ausente. Fale com o suporte, visse?"
	groqDownMsg   = "Eita! Num consegui falar com a inteligência agora não. Tenta de novo daqui a pouco."
)

// Groq calls the OpenAI-compatible chat completions endpoint and styles the
// answer before returning it. It never propagates a failure: network, auth
// and quota problems all degrade to an apology string.
type Groq struct {
	APIKey string
	Model  string
	Styler bot.Styler

	Endpoint string
	client   *http.Client
}

func NewGroq(apiKey, model string, styler bot.Styler) *Groq {
	return &Groq{
		APIKey:   apiKey,
		Model:    model,
		Styler:   styler,
		Endpoint: groqEndpoint,
		client:   &http.Client{Timeout: groqTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (g *Groq) Complete(ctx context.Context, userMessage, contextString string) (string, error) {
	if g.APIKey == "" {
		return missingKeyMsg, nil
	}

	prompt := userMessage
	if contextString != "" {
		prompt = fmt.Sprintf("%s\n\nMensagem do cliente: %s", contextString, userMessage)
	}

	reply, err := g.chat(ctx, prompt)
	if err != nil {
		logrus.WithError(err).Error("groq completion failed")
		reply = groqDownMsg
	}
	return g.Styler.Style(reply), nil
}

func (g *Groq) chat(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model: g.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   120,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("groq returned %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode groq response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}
