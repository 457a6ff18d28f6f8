package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Relay 调用第三方表单转发服务，将联系表单内容以固定模板发往站点邮箱。
// 未配置 endpoint 时为禁用状态，Forward 直接返回 nil。
type Relay struct {
	endpoint   string
	serviceID  string
	templateID string
	client     *http.Client
}

// NewRelay 构造 Relay。
func NewRelay(endpoint, serviceID, templateID string) *Relay {
	return &Relay{
		endpoint:   strings.TrimSpace(endpoint),
		serviceID:  serviceID,
		templateID: templateID,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled 返回是否配置了转发服务。
func (r *Relay) Enabled() bool {
	return r.endpoint != ""
}

// Forward 以 JSON POST 提交一次模板参数。
func (r *Relay) Forward(ctx context.Context, params map[string]string) error {
	if !r.Enabled() {
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"service_id":      r.serviceID,
		"template_id":     r.templateID,
		"template_params": params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("relay responded with status %d", resp.StatusCode)
	}
	return nil
}
