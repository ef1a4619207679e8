package orderservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с OrderService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента OrderService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetOrder получает заказ по ID
// Сетевые ошибки и таймауты возвращаются как ErrUnknownOutcome:
// ответа от сервера нет, поэтому исход на его стороне неизвестен.
// Ошибка в теле ответа - известный исход, возвращается как ErrInvalidResponse
// с машиночитаемым кодом.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	url := fmt.Sprintf("%s/internal/orders/%d", c.baseURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Запрос мог не дойти, а мог и дойти - сервер не ответил
		return nil, fmt.Errorf("%w: %v", ErrUnknownOutcome, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrOrderNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			return nil, fmt.Errorf("%w: status %d, code %d: %s",
				ErrInvalidResponse, resp.StatusCode, errResp.Code, errResp.Message)
		}
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &order, nil
}

// GetOrderWithGracefulDegradation получает заказ с graceful degradation
// При недоступности OrderService возвращает nil без ошибки: координатор
// статусов пропустит предложение перехода, но не завалит основной запрос
func (c *Client) GetOrderWithGracefulDegradation(ctx context.Context, orderID int64) (*Order, error) {
	order, err := c.GetOrder(ctx, orderID)
	if err != nil {
		if err == ErrOrderNotFound {
			c.log.Warn("Order id=%d not found in OrderService", orderID)
			return nil, err
		}

		c.log.Error("OrderService unavailable, skipping order lookup for id=%d: %v", orderID, err)
		return nil, nil
	}

	return order, nil
}
