package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// SMS送信の窓口。実装を差し替えてテストできるようにする。
type Notifier interface {
	Send(ctx context.Context, phone string, message string) error
}

// HTTPNotifier は設定されたエンドポイントへ1回POSTするだけ。
// 配信確認なし・リトライなし。失敗はログに残して握りつぶす。
type HTTPNotifier struct {
	endpoint string
	client   *http.Client
	log      zerolog.Logger
}

func NewHTTPNotifier(endpoint string, log zerolog.Logger) *HTTPNotifier {
	return &HTTPNotifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
}

type smsPayload struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

func (n *HTTPNotifier) Send(ctx context.Context, phone string, message string) error {
	if phone == "" {
		return nil
	}

	body, err := json.Marshal(smsPayload{To: phone, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.client.Do(req)
	if err != nil {
		n.log.Error().Err(err).Str("to", phone).Msg("sms send failed")
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		n.log.Error().Int("status", res.StatusCode).Str("to", phone).Msg("sms endpoint error")
	}
	return nil
}

// SMS_API_URL未設定のときに使う。何もしない。
type NoopNotifier struct{}

func (NoopNotifier) Send(ctx context.Context, phone string, message string) error {
	return nil
}
