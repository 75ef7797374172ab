package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/3fenban/fanban-cli/internal/config"
	"github.com/3fenban/fanban-cli/internal/model"
)

// Banners fetches the home-page carousel.
func (c *Client) Banners(ctx context.Context) ([]model.Banner, error) {
	env, err := c.CallEnvelope(ctx, config.EndpointBanners, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	var banners []model.Banner
	if err := json.Unmarshal(env.Data, &banners); err != nil {
		return nil, fmt.Errorf("failed to decode banners: %w", err)
	}
	return banners, nil
}

// Concerts fetches the concert listing.
func (c *Client) Concerts(ctx context.Context) ([]model.Concert, error) {
	env, err := c.CallEnvelope(ctx, config.EndpointConcerts, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	var concerts []model.Concert
	if err := json.Unmarshal(env.Data, &concerts); err != nil {
		return nil, fmt.Errorf("failed to decode concerts: %w", err)
	}
	return concerts, nil
}

// WechatLogin exchanges a one-time login code for a user and token.
func (c *Client) WechatLogin(ctx context.Context, params model.LoginParams) (*model.Envelope, error) {
	return c.CallEnvelope(ctx, config.EndpointWechatLogin, http.MethodPost, params)
}

// WechatCheck validates a token against the server. A transport failure is
// reported as an error so callers can distinguish "invalid" from "unknown".
func (c *Client) WechatCheck(ctx context.Context, token string) (bool, error) {
	env, err := c.CallEnvelope(ctx, config.EndpointWechatCheck, http.MethodPost, map[string]string{"token": token})
	if err != nil {
		return false, err
	}
	return env.Success, nil
}

// WechatPhone exchanges a phone-number consent code for the user's phone.
func (c *Client) WechatPhone(ctx context.Context, code, openid string) (*model.Envelope, error) {
	return c.CallEnvelope(ctx, config.EndpointWechatPhone, http.MethodPost, map[string]string{
		"code":   code,
		"openid": openid,
	})
}

// VerifyTicket asks the backend to verify a ticket number, the same endpoint
// a scanned ticket QR code resolves to.
func (c *Client) VerifyTicket(ctx context.Context, ticketNumber string) (*model.Envelope, error) {
	return c.CallEnvelope(ctx, config.EndpointTicketVerify, http.MethodPost, map[string]string{
		"ticketNumber": ticketNumber,
	})
}
