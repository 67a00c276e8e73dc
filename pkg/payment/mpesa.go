package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MPesaProvider charges via Vodacom M-Pesa Mozambique (C2B single
// stage). Amounts are in whole meticais; the customer confirms the
// charge with a PIN prompt on their phone.
type MPesaProvider struct {
	apiKey             string
	serviceProviderCode string
	baseURL            string
	webhookSecret      string
	httpClient         *http.Client
}

type mpesaC2BRequest struct {
	InputTransactionReference   string `json:"input_TransactionReference"`
	InputCustomerMSISDN         string `json:"input_CustomerMSISDN"`
	InputAmount                 string `json:"input_Amount"`
	InputThirdPartyReference    string `json:"input_ThirdPartyReference"`
	InputServiceProviderCode    string `json:"input_ServiceProviderCode"`
}

type mpesaC2BResponse struct {
	OutputResponseCode       string `json:"output_ResponseCode"`
	OutputResponseDesc       string `json:"output_ResponseDesc"`
	OutputTransactionID      string `json:"output_TransactionID"`
	OutputConversationID     string `json:"output_ConversationID"`
	OutputThirdPartyReference string `json:"output_ThirdPartyReference"`
}

type mpesaReversalRequest struct {
	InputTransactionID       string `json:"input_TransactionID"`
	InputReversalAmount      string `json:"input_ReversalAmount"`
	InputThirdPartyReference string `json:"input_ThirdPartyReference"`
	InputServiceProviderCode string `json:"input_ServiceProviderCode"`
}

func NewMPesaProvider(apiKey, serviceProviderCode, webhookSecret, mode string) *MPesaProvider {
	baseURL := "https://api.sandbox.vm.co.mz:18352"
	if mode == "live" {
		baseURL = "https://api.vm.co.mz:18352"
	}

	return &MPesaProvider{
		apiKey:              apiKey,
		serviceProviderCode: serviceProviderCode,
		baseURL:             baseURL,
		webhookSecret:       webhookSecret,
		httpClient:          &http.Client{Timeout: 90 * time.Second},
	}
}

func (m *MPesaProvider) ProcessPayment(ctx context.Context, request *PaymentRequest) (*PaymentResponse, error) {
	if !strings.EqualFold(request.Currency, "MZN") {
		return nil, fmt.Errorf("m-pesa only supports MZN, got %s", request.Currency)
	}

	mpesaRequest := mpesaC2BRequest{
		InputTransactionReference: request.Reference,
		InputCustomerMSISDN:       normalizeMSISDN(request.PhoneNumber),
		InputAmount:               fmt.Sprintf("%.2f", request.Amount),
		InputThirdPartyReference:  request.Reference,
		InputServiceProviderCode:  m.serviceProviderCode,
	}

	result, err := m.post(ctx, "/ipg/v1x/c2bPayment/singleStage/", mpesaRequest)
	if err != nil {
		return nil, err
	}

	if result.OutputResponseCode != "INS-0" {
		return nil, fmt.Errorf("m-pesa rejected payment: %s (%s)", result.OutputResponseDesc, result.OutputResponseCode)
	}

	return &PaymentResponse{
		TransactionID: result.OutputTransactionID,
		Status:        "succeeded",
		Amount:        request.Amount,
		Currency:      "MZN",
		CreatedAt:     time.Now().Unix(),
		Metadata: map[string]interface{}{
			"conversation_id": result.OutputConversationID,
		},
	}, nil
}

func (m *MPesaProvider) RefundPayment(ctx context.Context, request *RefundRequest) (*RefundResponse, error) {
	mpesaRequest := mpesaReversalRequest{
		InputTransactionID:       request.TransactionID,
		InputReversalAmount:      fmt.Sprintf("%.2f", request.Amount),
		InputThirdPartyReference: fmt.Sprintf("REV-%d", time.Now().Unix()),
		InputServiceProviderCode: m.serviceProviderCode,
	}

	result, err := m.post(ctx, "/ipg/v1x/reversal/", mpesaRequest)
	if err != nil {
		return nil, err
	}

	if result.OutputResponseCode != "INS-0" {
		return nil, fmt.Errorf("m-pesa rejected reversal: %s (%s)", result.OutputResponseDesc, result.OutputResponseCode)
	}

	return &RefundResponse{
		RefundID:  result.OutputTransactionID,
		Status:    "succeeded",
		Amount:    request.Amount,
		Currency:  "MZN",
		CreatedAt: time.Now().Unix(),
	}, nil
}

// ValidateWebhook checks the HMAC-SHA256 signature of an M-Pesa result
// callback against the shared webhook secret.
func (m *MPesaProvider) ValidateWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error) {
	mac := hmac.New(sha256.New, []byte(m.webhookSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, fmt.Errorf("invalid webhook signature")
	}

	data := make(map[string]interface{})
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal webhook payload: %w", err)
	}

	eventID, _ := data["output_TransactionID"].(string)

	return &WebhookEvent{
		EventID:   eventID,
		EventType: "payment.result",
		Data:      data,
		CreatedAt: time.Now().Unix(),
	}, nil
}

func (m *MPesaProvider) post(ctx context.Context, path string, body interface{}) (*mpesaC2BResponse, error) {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", m.baseURL+path, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Origin", "developer.mpesa.vm.co.mz")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("m-pesa API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result mpesaC2BResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

// normalizeMSISDN converts "+258 84 123 4567" to "258841234567".
func normalizeMSISDN(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	if strings.HasPrefix(cleaned, "258") {
		return cleaned
	}
	return "258" + cleaned
}
