// Package carrier is the HTTP client for the carrier's external API. Every
// exported method maps to exactly one endpoint and never retries.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	opServiceability   = "serviceability"
	opCreateOrder      = "create order"
	opAssignAWB        = "assign awb"
	opGeneratePickup   = "generate pickup"
	opGenerateLabel    = "generate label"
	opPrintInvoice     = "print invoice"
	opGenerateManifest = "generate manifest"
	opPrintManifest    = "print manifest"
	opTrackAWB         = "track awb"

	maxResponseBytes = 1 << 20
	maxErrorText     = 300

	pickupScheduledTag = "PICKUP_SCHEDULED"
)

var _ ports.CarrierClient = (*Client)(nil)

type Config struct {
	BaseURL  string
	Email    string
	Password string
	// Token skips the login exchange when set.
	Token   string
	Timeout time.Duration
}

func (c Config) Validate() error {
	var errList []error
	if strings.TrimSpace(c.BaseURL) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("carrier base url"))
	} else if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("carrier base url", err))
	}
	if c.Token == "" && (c.Email == "" || c.Password == "") {
		errList = append(errList, errs.NewValueIsRequiredError("carrier token or email and password"))
	}
	if c.Timeout <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("carrier timeout", c.Timeout, "1ns", "-"))
	}
	return stderrors.Join(errList...)
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  tokenSource
	logger  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	var tokens tokenSource
	if cfg.Token != "" {
		tokens = newStaticTokenSource(cfg.Token)
	} else {
		tokens = newCachedTokenSource(&loginSource{
			endpoint: baseURL + "/auth/login",
			email:    cfg.Email,
			password: cfg.Password,
			http:     &http.Client{Timeout: cfg.Timeout},
			now:      time.Now,
		})
	}

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &oauth2.Transport{Source: tokens, Base: http.DefaultTransport},
		},
		tokens: tokens,
		logger: logger.With("component", "carrier_client"),
	}, nil
}

func (c *Client) CheckServiceability(
	ctx context.Context, req ports.ServiceabilityRequest,
) (ports.Serviceability, error) {
	cod := "0"
	if req.COD {
		cod = "1"
	}
	query := url.Values{
		"pickup_postcode":   {req.PickupPostcode},
		"delivery_postcode": {req.DeliveryPostcode},
		"weight":            {strconv.FormatFloat(req.WeightKG, 'f', 2, 64)},
		"cod":               {cod},
		"declared_value":    {strconv.FormatInt(req.DeclaredValue, 10)},
	}

	doc, err := c.call(ctx, opServiceability, http.MethodGet, "/courier/serviceability/", query, nil)
	if err != nil {
		return ports.Serviceability{}, err
	}

	out := ports.Serviceability{RecommendedCourierID: firstString(doc, recommendedCourierPaths)}
	for _, item := range firstList(doc, courierListPaths) {
		id := firstString(item, courierIDPaths)
		if id == "" {
			continue
		}
		out.Couriers = append(out.Couriers, services.CourierOption{
			ID:            id,
			Name:          firstString(item, courierNamePaths),
			Rate:          firstFloat(item, courierRatePaths),
			EstimatedDays: firstInt(item, courierDaysPaths),
		})
	}
	return out, nil
}

func (c *Client) CreateOrder(ctx context.Context, payload shipment.CarrierPayload) (ports.CreateOrderResult, error) {
	doc, err := c.call(ctx, opCreateOrder, http.MethodPost, "/orders/create/adhoc", nil, payload)
	if err != nil {
		return ports.CreateOrderResult{}, err
	}
	return ports.CreateOrderResult{
		ShipmentID:     firstString(doc, shipmentIDPaths),
		CarrierOrderID: firstString(doc, carrierOrderIDPaths),
		Status:         firstString(doc, orderStatusPaths),
	}, nil
}

// AssignAWB leaves the courier choice to the carrier when courierID is empty.
func (c *Client) AssignAWB(ctx context.Context, shipmentID, courierID string) (ports.AssignAWBResult, error) {
	body := map[string]any{"shipment_id": idValue(shipmentID)}
	if courierID != "" {
		body["courier_id"] = idValue(courierID)
	}

	doc, err := c.call(ctx, opAssignAWB, http.MethodPost, "/courier/assign/awb", nil, body)
	if err != nil {
		return ports.AssignAWBResult{}, err
	}

	awb := firstString(doc, awbPaths)
	if awb == "" && firstString(doc, awbAssignStatusPaths) == "0" {
		if msg := firstString(doc, awbAssignErrorPaths); msg != "" {
			return ports.AssignAWBResult{}, ports.NewCarrierRejectedError(opAssignAWB, http.StatusOK, msg)
		}
	}

	courier := firstString(doc, awbCourierIDPaths)
	if courier == "" {
		courier = courierID
	}
	return ports.AssignAWBResult{
		AWB:         awb,
		CourierName: firstString(doc, awbCourierNamePaths),
		CourierID:   courier,
	}, nil
}

func (c *Client) GeneratePickup(ctx context.Context, ref ports.ShipmentRef) (ports.PickupResult, error) {
	body := map[string]any{"shipment_id": []any{idValue(ref.ShipmentID)}}
	doc, err := c.call(ctx, opGeneratePickup, http.MethodPost, "/courier/generate/pickup", nil, body)
	if err != nil {
		return ports.PickupResult{}, err
	}

	res := ports.PickupResult{ScheduledDate: firstString(doc, pickupDatePaths)}
	if res.ScheduledDate != "" {
		res.Status = pickupScheduledTag
	}
	return res, nil
}

func (c *Client) GenerateLabel(ctx context.Context, ref ports.ShipmentRef) (ports.DocumentResult, error) {
	body := map[string]any{"shipment_id": []any{idValue(ref.ShipmentID)}}
	doc, err := c.call(ctx, opGenerateLabel, http.MethodPost, "/courier/generate/label", nil, body)
	if err != nil {
		return ports.DocumentResult{}, err
	}
	return ports.DocumentResult{URL: firstString(doc, labelURLPaths)}, nil
}

func (c *Client) PrintInvoice(ctx context.Context, ref ports.ShipmentRef) (ports.DocumentResult, error) {
	if ref.CarrierOrderID == "" {
		return ports.DocumentResult{}, errs.NewValueIsRequiredError("carrier order id")
	}
	body := map[string]any{"ids": []any{idValue(ref.CarrierOrderID)}}
	doc, err := c.call(ctx, opPrintInvoice, http.MethodPost, "/orders/print/invoice", nil, body)
	if err != nil {
		return ports.DocumentResult{}, err
	}
	return ports.DocumentResult{URL: firstString(doc, invoiceURLPaths)}, nil
}

func (c *Client) GenerateManifest(ctx context.Context, ref ports.ShipmentRef) error {
	body := map[string]any{"shipment_id": []any{idValue(ref.ShipmentID)}}
	_, err := c.call(ctx, opGenerateManifest, http.MethodPost, "/manifests/generate", nil, body)
	return err
}

func (c *Client) PrintManifest(ctx context.Context, ref ports.ShipmentRef) (ports.DocumentResult, error) {
	if ref.CarrierOrderID == "" {
		return ports.DocumentResult{}, errs.NewValueIsRequiredError("carrier order id")
	}
	body := map[string]any{"order_ids": []any{idValue(ref.CarrierOrderID)}}
	doc, err := c.call(ctx, opPrintManifest, http.MethodPost, "/manifests/print", nil, body)
	if err != nil {
		return ports.DocumentResult{}, err
	}
	return ports.DocumentResult{URL: firstString(doc, manifestURLPaths)}, nil
}

func (c *Client) TrackAWB(ctx context.Context, awb string) (ports.Tracking, error) {
	awb = strings.TrimSpace(awb)
	if awb == "" {
		return ports.Tracking{}, errs.NewValueIsRequiredError("awb")
	}

	doc, err := c.call(ctx, opTrackAWB, http.MethodGet, "/courier/track/awb/"+url.PathEscape(awb), nil, nil)
	if err != nil {
		return ports.Tracking{}, err
	}

	out := ports.Tracking{
		AWB:           awb,
		CurrentStatus: firstString(doc, trackStatusPaths),
		ETD:           firstString(doc, trackETDPaths),
		TrackURL:      firstString(doc, trackURLPaths),
	}
	for _, item := range firstList(doc, trackActivitiesPaths) {
		out.Activities = append(out.Activities, ports.TrackingActivity{
			Date:     firstString(item, activityDatePaths),
			Status:   firstString(item, activityStatusPaths),
			Activity: firstString(item, activityTextPaths),
			Location: firstString(item, activityLocationPaths),
		})
	}
	return out, nil
}

// call performs one request and classifies the outcome. The decoded body is
// returned only for 2xx answers.
func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, body any) (any, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "carrier %s: encode request", op)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "carrier %s: build request", op)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		var carrierErr *ports.CarrierError
		if errors.As(err, &carrierErr) {
			c.logger.Warn("carrier login failed", "op", op, "kind", carrierErr.Kind, "status", carrierErr.StatusCode)
			return nil, carrierErr
		}
		c.logger.Warn("carrier call failed", "op", op, "error", err)
		return nil, ports.NewCarrierTransportError(op, 0, "", errors.Wrapf(err, "%s %s", method, path))
	}
	defer resp.Body.Close()

	doc, text, decodeErr := decodeBody(resp.Body)
	c.logger.Debug("carrier call", "op", op, "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Invalidate()
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		msg := errorMessage(doc)
		if msg == "" {
			msg = text
		}
		c.logger.Warn("carrier rejected call", "op", op, "status", resp.StatusCode, "message", msg)
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, ports.NewCarrierTransportError(op, resp.StatusCode, msg, decodeErr)
		}
		return nil, ports.NewCarrierRejectedError(op, resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return nil, ports.NewCarrierTransportError(op, resp.StatusCode, "unreadable response", decodeErr)
	}

	// Some endpoints answer 200 with the real status in the body.
	if code := firstInt(doc, embeddedStatusPaths); code >= http.StatusMultipleChoices {
		msg := errorMessage(doc)
		c.logger.Warn("carrier rejected call", "op", op, "status", code, "message", msg)
		return nil, ports.NewCarrierRejectedError(op, code, msg)
	}
	return doc, nil
}

// decodeBody returns the JSON document, or the raw text when the body is not
// JSON. An empty body decodes to nil without error.
func decodeBody(r io.Reader) (any, string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxResponseBytes))
	if err != nil {
		return nil, "", errors.Wrap(err, "read response body")
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, "", nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		text := string(raw)
		if len(text) > maxErrorText {
			text = text[:maxErrorText]
		}
		return nil, text, errors.Wrap(err, "decode response body")
	}
	return doc, "", nil
}

// idValue sends numeric ids as JSON numbers, which the carrier requires.
func idValue(id string) any {
	id = strings.TrimSpace(id)
	if _, err := strconv.ParseInt(id, 10, 64); err == nil {
		return json.Number(id)
	}
	return id
}
