package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/getshelfd/shelfd/internal/id"
	"github.com/getshelfd/shelfd/pkg/resource"
	"github.com/getshelfd/shelfd/pkg/store"
	"github.com/getshelfd/shelfd/pkg/util"
)

// ResourceClient performs CRUD calls for one catalog resource. Call
// functions are pure closures over the API configuration; no state is
// carried between invocations.
type ResourceClient struct {
	api *API
	res *resource.Resource
}

// Name returns the resource name.
func (c *ResourceClient) Name() string {
	return c.res.Name
}

// IDField returns the entity field holding the identifier.
func (c *ResourceClient) IDField() string {
	return c.res.IDField
}

// Operations returns the operations the resource supports.
func (c *ResourceClient) Operations() []resource.Operation {
	out := make([]resource.Operation, len(c.res.Operations))
	copy(out, c.res.Operations)
	return out
}

// Create POSTs a new entity. The payload must not carry the id field.
func (c *ResourceClient) Create(ctx context.Context, data map[string]any, opts ...CallOption) (any, error) {
	return c.Call(ctx, resource.Create, data, opts...)
}

// Read GETs the collection and commits it to the store as an id-keyed map.
func (c *ResourceClient) Read(ctx context.Context, opts ...CallOption) (any, error) {
	return c.Call(ctx, resource.Read, nil, opts...)
}

// Get GETs a single entity by id.
func (c *ResourceClient) Get(ctx context.Context, entityID string, opts ...CallOption) (any, error) {
	return c.Call(ctx, resource.Get, map[string]any{c.res.IDField: entityID}, opts...)
}

// Update PATCHes an entity. The payload must carry the id field.
func (c *ResourceClient) Update(ctx context.Context, data map[string]any, opts ...CallOption) (any, error) {
	return c.Call(ctx, resource.Update, data, opts...)
}

// Delete removes an entity by id and evicts it from the store.
func (c *ResourceClient) Delete(ctx context.Context, entityID string, opts ...CallOption) (any, error) {
	return c.Call(ctx, resource.Delete, map[string]any{c.res.IDField: entityID}, opts...)
}

// Call performs one operation. The pipeline: validate the id rules and
// payload synchronously, dispatch a tracking action carrying the in-flight
// request, normalize the settled response, and commit it with the
// resource's update action. The returned value is the committed one.
func (c *ResourceClient) Call(ctx context.Context, op resource.Operation, data map[string]any, opts ...CallOption) (any, error) {
	if _, err := resource.ParseOperation(string(op)); err != nil {
		return nil, &InvalidRequestError{Resource: c.res.Name, Op: op, Reason: err.Error()}
	}
	if !c.res.Supports(op) {
		return nil, &InvalidRequestError{Resource: c.res.Name, Op: op, Reason: "operation not declared for this resource"}
	}

	entityID, hasID := "", false
	if data != nil {
		if v, ok := data[c.res.IDField]; ok && v != nil {
			entityID, hasID = resource.IDKey(v)
			if !hasID {
				return nil, &InvalidRequestError{Resource: c.res.Name, Op: op, Reason: fmt.Sprintf("unusable %q field in payload", c.res.IDField)}
			}
		}
	}
	if op.ForbidsID() && hasID {
		return nil, &InvalidRequestError{Resource: c.res.Name, Op: op, Reason: "id creation is the responsibility of the backend"}
	}
	if op.RequiresID() && !hasID {
		return nil, &MissingIDError{Resource: c.res.Name, Op: op}
	}

	var body []byte
	if op.HasBody() {
		var err error
		body, err = json.Marshal(data)
		if err != nil {
			return nil, &InvalidRequestError{Resource: c.res.Name, Op: op, Reason: fmt.Sprintf("payload is not serializable: %v", err)}
		}
		if c.res.Schema != nil {
			if err := c.validatePayload(op, body); err != nil {
				return nil, err
			}
		}
	}

	co := newCallOptions(opts)
	verb := op.Method()

	target := c.api.baseURL.JoinPath(c.res.Path)
	if hasID {
		target = target.JoinPath(entityID)
	}
	if len(co.query) > 0 {
		target.RawQuery = co.query.Encode()
	}

	pending := &pendingCall{
		run: func(ctx context.Context) (any, error) {
			return c.api.doRequest(ctx, verb, target.String(), body, co.header)
		},
	}

	tracked, err := c.api.dispatcher.Dispatch(ctx, store.Action{
		Type:    store.TrackingActionType(verb, c.res.Name),
		Payload: pending,
	})
	if err != nil {
		return nil, err
	}

	var commit any
	if op == resource.Delete {
		commit = store.Deletion{ID: entityID}
	} else {
		commit, err = c.normalize(tracked.Value)
		if err != nil {
			return nil, err
		}
	}

	creator, err := c.api.updateAction(c.res.Name)
	if err != nil {
		return nil, err
	}
	committed, err := c.api.dispatcher.Dispatch(ctx, creator(commit))
	if err != nil {
		return nil, err
	}

	c.api.log.Debug("call complete", "resource", c.res.Name, "op", string(op), "verb", verb, "id", entityID)
	return committed.Value, nil
}

// validatePayload checks a create/update body against the resource schema.
func (c *ResourceClient) validatePayload(op resource.Operation, body []byte) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return &InvalidRequestError{Resource: c.res.Name, Op: op, Reason: err.Error()}
	}
	if err := c.res.Schema.Validate(v); err != nil {
		return &InvalidRequestError{Resource: c.res.Name, Op: op, Reason: fmt.Sprintf("payload failed schema validation: %v", err)}
	}
	return nil
}

// normalize converts an array-shaped response into an id-keyed map. Any
// other shape passes through unchanged. Duplicate ids: last write wins.
func (c *ResourceClient) normalize(value any) (any, error) {
	list, ok := value.([]any)
	if !ok {
		return value, nil
	}

	keyed := make(map[string]any, len(list))
	for i, elem := range list {
		entity, ok := elem.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("failed to normalize %q response: element %d is not an object", c.res.Name, i)
		}
		key, ok := c.res.EntityID(entity)
		if !ok {
			return nil, fmt.Errorf("failed to normalize %q response: element %d has no usable %q field", c.res.Name, i, c.res.IDField)
		}
		keyed[key] = entity
	}
	return keyed, nil
}

// pendingCall carries an in-flight request through the store as a Pending
// payload; the store's dispatch awaits it.
type pendingCall struct {
	run func(ctx context.Context) (any, error)
}

func (p *pendingCall) Await(ctx context.Context) (any, error) {
	return p.run(ctx)
}

// doRequest executes one HTTP request, retrying idempotent verbs on
// retryable transport failures within the configured bound.
func (a *API) doRequest(ctx context.Context, verb, target string, body []byte, header http.Header) (any, error) {
	attempts := 1
	if verb == http.MethodGet || verb == http.MethodDelete {
		attempts += a.retry.MaxRetries
	}
	if attempts < 1 {
		attempts = 1
	}

	delay := a.retry.BaseDelay
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			a.log.Debug("retrying request", "verb", verb, "url", target, "attempt", attempt, "delay", delay)
			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
			delay *= 2
		}

		value, err := a.once(ctx, verb, target, body, header)
		if err == nil {
			return value, nil
		}
		lastErr = err

		var te *TransportError
		if !errors.As(err, &te) || !te.Retryable() || ctx.Err() != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

// once executes a single HTTP attempt.
func (a *API) once(ctx context.Context, verb, target string, body []byte, header http.Header) (any, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, verb, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", verb, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := a.creds.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve credentials: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-Id", id.UUID())
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Verb: verb, URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Verb: verb, URL: target, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{
			Verb:   verb,
			URL:    target,
			Status: resp.StatusCode,
			Body:   util.TruncateBody(string(data), 0),
		}
	}

	if len(data) == 0 {
		return nil, nil
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("failed to decode %s %s response: %w", verb, target, err)
	}
	return value, nil
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
