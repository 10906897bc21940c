package carrier

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// accessor reads one logical field from a decoded response body.
type accessor func(doc any) (any, bool)

// at builds an accessor for a dotted path. Numeric segments index arrays.
func at(path string) accessor {
	segments := strings.Split(path, ".")
	return func(doc any) (any, bool) {
		cur := doc
		for _, seg := range segments {
			switch node := cur.(type) {
			case map[string]any:
				next, ok := node[seg]
				if !ok {
					return nil, false
				}
				cur = next
			case []any:
				i, err := strconv.Atoi(seg)
				if err != nil || i < 0 || i >= len(node) {
					return nil, false
				}
				cur = node[i]
			default:
				return nil, false
			}
		}
		return cur, cur != nil
	}
}

func paths(ps ...string) []accessor {
	out := make([]accessor, len(ps))
	for i, p := range ps {
		out[i] = at(p)
	}
	return out
}

// The carrier has moved fields between nesting levels across API versions.
// Each list is tried in order and the first non-empty value wins.
var (
	shipmentIDPaths     = paths("shipment_id", "data.shipment_id", "payload.shipment_id", "response.data.shipment_id")
	carrierOrderIDPaths = paths("order_id", "data.order_id", "payload.order_id", "channel_order_id")
	orderStatusPaths    = paths("status", "data.status", "payload.status")

	awbPaths = paths(
		"response.data.awb_code", "data.awb_code", "awb_code", "response.awb_code", "payload.awb_code",
	)
	awbCourierNamePaths = paths("response.data.courier_name", "data.courier_name", "courier_name")
	awbCourierIDPaths   = paths(
		"response.data.courier_company_id", "data.courier_company_id", "courier_company_id", "courier_id",
	)
	awbAssignStatusPaths = paths("awb_assign_status", "response.awb_assign_status")
	awbAssignErrorPaths  = paths("response.data.awb_assign_error", "data.awb_assign_error", "awb_assign_error")

	recommendedCourierPaths = paths(
		"data.recommended_courier_company_id",
		"recommended_courier_company_id",
		"data.shiprocket_recommended_courier_id",
		"data.recommended_by.id",
	)
	courierListPaths = paths("data.available_courier_companies", "available_courier_companies", "data.couriers")
	courierIDPaths   = paths("courier_company_id", "id", "courier_id")
	courierNamePaths = paths("courier_name", "name")
	courierRatePaths = paths("rate", "freight_charge", "total_charge")
	courierDaysPaths = paths("estimated_delivery_days", "etd_days")

	pickupDatePaths  = paths("response.pickup_scheduled_date", "pickup_scheduled_date", "data.pickup_scheduled_date")
	labelURLPaths    = paths("label_url", "response.label_url", "data.label_url")
	invoiceURLPaths  = paths("invoice_url", "data.invoice_url", "response.invoice_url")
	manifestURLPaths = paths("manifest_url", "data.manifest_url", "response.manifest_url")

	trackStatusPaths = paths(
		"tracking_data.shipment_track.0.current_status",
		"tracking_data.shipment_status_label",
		"tracking_data.track_status",
	)
	trackETDPaths        = paths("tracking_data.etd", "tracking_data.shipment_track.0.edd")
	trackURLPaths        = paths("tracking_data.track_url")
	trackActivitiesPaths = paths("tracking_data.shipment_track_activities")

	activityDatePaths     = paths("date")
	activityStatusPaths   = paths("sr-status-label", "status")
	activityTextPaths     = paths("activity")
	activityLocationPaths = paths("location")

	embeddedStatusPaths = paths("status_code")
	messagePaths        = paths("message", "error.message", "error", "response.data", "msg")
	errorListPaths      = paths("errors")
)

// firstString returns the first accessor result that renders as a non-empty
// string. Numbers are kept in their JSON form.
func firstString(doc any, accessors []accessor) string {
	for _, read := range accessors {
		v, ok := read(doc)
		if !ok {
			continue
		}
		if s := scalarString(v); s != "" {
			return s
		}
	}
	return ""
}

func firstList(doc any, accessors []accessor) []any {
	for _, read := range accessors {
		v, ok := read(doc)
		if !ok {
			continue
		}
		if list, isList := v.([]any); isList && len(list) > 0 {
			return list
		}
	}
	return nil
}

func firstFloat(doc any, accessors []accessor) float64 {
	s := firstString(doc, accessors)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func firstInt(doc any, accessors []accessor) int {
	return int(firstFloat(doc, accessors))
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// errorMessage flattens the carrier's error body into one line. The carrier
// reports field errors as {"errors": {"field": ["msg", ...]}}.
func errorMessage(doc any) string {
	if msg := firstString(doc, messagePaths); msg != "" {
		return msg
	}

	v, ok := errorListPaths[0](doc)
	if !ok {
		return ""
	}
	fields, isMap := v.(map[string]any)
	if !isMap {
		return scalarString(v)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var parts []string
	for _, k := range keys {
		switch msgs := fields[k].(type) {
		case []any:
			for _, m := range msgs {
				if s := scalarString(m); s != "" {
					parts = append(parts, k+": "+s)
				}
			}
		default:
			if s := scalarString(msgs); s != "" {
				parts = append(parts, k+": "+s)
			}
		}
	}
	return strings.Join(parts, "; ")
}
