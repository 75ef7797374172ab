package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/3fenban/fanban-cli/internal/api"
	"github.com/3fenban/fanban-cli/internal/model"
)

// Profile is the user-consented profile data from the host platform.
type Profile struct {
	Nickname  string
	AvatarURL string
}

// CredentialProvider abstracts the host platform's consent and login-code
// prompts (getUserProfile / login in the mini-program runtime).
type CredentialProvider interface {
	// RequestProfile asks the user for profile consent. It returns
	// model.ErrConsentDenied when the user declines.
	RequestProfile(ctx context.Context) (*Profile, error)
	// RequestLoginCode obtains a one-time login code.
	RequestLoginCode(ctx context.Context) (string, error)
}

// Orchestrator sequences the three-step login handshake: profile consent,
// login-code retrieval, then the backend token exchange. The flow is strictly
// sequential and single-pass; transport retries already happen inside the
// dispatcher, never here.
type Orchestrator struct {
	client   *api.Client
	sessions *SessionStore
	provider CredentialProvider
}

// NewOrchestrator wires the login flow to a backend client, a session store,
// and a credential provider.
func NewOrchestrator(client *api.Client, sessions *SessionStore, provider CredentialProvider) *Orchestrator {
	return &Orchestrator{client: client, sessions: sessions, provider: provider}
}

const domainNotConfiguredMessage = "network request failed (6000100): check the domain configuration " +
	"or your network connection, or contact support"

// Login runs the handshake. Failures surface as Success=false with a
// human-readable message rather than an error, so callers can render inline
// feedback.
func (o *Orchestrator) Login(ctx context.Context) model.LoginResult {
	// Step 1: user-profile consent.
	profile, err := o.provider.RequestProfile(ctx)
	if err != nil {
		if errors.Is(err, model.ErrConsentDenied) {
			return model.LoginResult{Success: false, Message: "user cancelled authorization, please try logging in again"}
		}
		return model.LoginResult{Success: false, Message: api.Classify(err).Message}
	}

	// Step 2: one-time login code.
	code, err := o.provider.RequestLoginCode(ctx)
	if err != nil || code == "" {
		return model.LoginResult{Success: false, Message: model.ErrNoLoginCode.Error()}
	}

	// Step 3: backend token exchange.
	env, err := o.client.WechatLogin(ctx, model.LoginParams{
		Code:      code,
		Nickname:  profile.Nickname,
		AvatarURL: profile.AvatarURL,
	})
	if err != nil {
		var reqErr *api.RequestError
		if errors.As(err, &reqErr) && reqErr.Kind == api.KindTransport && reqErr.Code == api.CodeRequestFailed {
			return model.LoginResult{Success: false, Message: domainNotConfiguredMessage}
		}
		return model.LoginResult{Success: false, Message: api.Classify(err).Message}
	}

	if !env.Success {
		if env.ErrorCode == strconv.Itoa(api.CodeRequestFailed) {
			return model.LoginResult{Success: false, Message: domainNotConfiguredMessage}
		}
		msg := env.Message
		if msg == "" {
			msg = "login failed, please retry"
		}
		return model.LoginResult{Success: false, Message: msg}
	}

	var data model.LoginData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return model.LoginResult{Success: false, Message: "login failed, please retry"}
	}

	// Persist the session; a failed write still yields a usable in-memory
	// result, matching the mini-program behavior.
	_ = o.sessions.Save(data.User, data.Token)

	return model.LoginResult{Success: true, User: &data.User, Token: data.Token}
}

// PhoneNumber exchanges a phone-consent code for the user's phone number and
// refreshes the cached profile. It requires an existing local session.
func (o *Orchestrator) PhoneNumber(ctx context.Context, code string) model.PhoneResult {
	if code == "" {
		return model.PhoneResult{Success: false, Message: "phone number authorization failed"}
	}
	token := o.sessions.CurrentToken()
	user := o.sessions.CurrentUser()
	if token == "" || user == nil {
		return model.PhoneResult{Success: false, Message: model.ErrNoSession.Error()}
	}

	env, err := o.client.WechatPhone(ctx, code, user.OpenID)
	if err != nil {
		return model.PhoneResult{Success: false, Message: api.Classify(err).Message}
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "failed to obtain phone number"
		}
		return model.PhoneResult{Success: false, Message: msg}
	}

	var payload struct {
		Phone string     `json:"phone"`
		User  model.User `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return model.PhoneResult{Success: false, Message: "failed to obtain phone number"}
	}
	_ = o.sessions.Save(payload.User, token)
	return model.PhoneResult{Success: true, Phone: payload.Phone}
}
