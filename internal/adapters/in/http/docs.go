package http

import "github.com/swaggo/swag"

// SwaggerInfo describes the API served at /swagger/*. Keep docTemplate in
// step with Register.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Fulfillment API",
	Description:      "Checkout and admin shipment operations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "{{.Title}}",
    "description": "{{escape .Description}}",
    "version": "{{.Version}}"
  },
  "host": "{{.Host}}",
  "basePath": "{{.BasePath}}",
  "schemes": {{ marshal .Schemes }},
  "consumes": ["application/json"],
  "produces": ["application/json"],
  "paths": {
    "/health": {
      "get": {
        "summary": "Liveness probe",
        "produces": ["text/plain"],
        "responses": {"200": {"description": "Healthy"}}
      }
    },
    "/api/v1/orders": {
      "post": {
        "summary": "Place an order",
        "parameters": [
          {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckoutRequest"}}
        ],
        "responses": {
          "201": {"description": "Order placed", "schema": {"$ref": "#/definitions/Order"}},
          "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/Error"}},
          "409": {"description": "Insufficient stock", "schema": {"$ref": "#/definitions/Error"}},
          "422": {"description": "Addresses insufficient", "schema": {"$ref": "#/definitions/Error"}}
        }
      }
    },
    "/api/v1/orders/{ref}": {
      "get": {
        "summary": "Get an order by id or number",
        "parameters": [{"$ref": "#/parameters/ref"}],
        "responses": {
          "200": {"description": "Order", "schema": {"$ref": "#/definitions/Order"}},
          "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}
        }
      }
    },
    "/api/v1/admin/orders": {
      "get": {
        "summary": "List orders, newest first",
        "parameters": [
          {"name": "status", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"},
          {"name": "limit", "in": "query", "type": "integer", "minimum": 1, "maximum": 200}
        ],
        "responses": {
          "200": {"description": "Orders", "schema": {"type": "array", "items": {"$ref": "#/definitions/OrderSummary"}}},
          "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/Error"}}
        }
      }
    },
    "/api/v1/admin/orders/{ref}/shipment": {
      "post": {
        "summary": "Create the carrier shipment",
        "parameters": [{"$ref": "#/parameters/ref"}],
        "responses": {
          "200": {"description": "Order after the step", "schema": {"$ref": "#/definitions/Order"}},
          "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}},
          "409": {"description": "Wrong shipment state or step in progress", "schema": {"$ref": "#/definitions/Error"}},
          "422": {"description": "Payload invalid or no courier", "schema": {"$ref": "#/definitions/Error"}},
          "502": {"description": "Carrier failure", "schema": {"$ref": "#/definitions/Error"}}
        }
      }
    },
    "/api/v1/admin/orders/{ref}/awb": {
      "post": {
        "summary": "Assign an AWB",
        "parameters": [
          {"$ref": "#/parameters/ref"},
          {"name": "body", "in": "body", "required": false, "schema": {"$ref": "#/definitions/AssignAWBRequest"}}
        ],
        "responses": {
          "200": {"description": "Order after the step", "schema": {"$ref": "#/definitions/Order"}},
          "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}},
          "409": {"description": "Wrong shipment state or step in progress", "schema": {"$ref": "#/definitions/Error"}},
          "422": {"description": "Payload invalid or no courier", "schema": {"$ref": "#/definitions/Error"}},
          "502": {"description": "Carrier failure", "schema": {"$ref": "#/definitions/Error"}}
        }
      }
    },
    "/api/v1/admin/orders/{ref}/pickup": {
      "post": {
        "summary": "Request carrier pickup",
        "parameters": [{"$ref": "#/parameters/ref"}],
        "responses": {
          "200": {"description": "Order after the step", "schema": {"$ref": "#/definitions/Order"}},
          "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}},
          "409": {"description": "Wrong shipment state or step in progress", "schema": {"$ref": "#/definitions/Error"}},
          "422": {"description": "Payload invalid or no courier", "schema": {"$ref": "#/definitions/Error"}},
          "502": {"description": "Carrier failure", "schema": {"$ref": "#/definitions/Error"}}
        }
      }
    },
    "/api/v1/admin/orders/{ref}/label": {
      "post": {
        "summary": "Generate the shipping label",
        "parameters": [{"$ref": "#/parameters/ref"}],
        "responses": {
          "200": {"description": "Order after the step", "schema": {"$ref": "#/definitions/Order"}},
          "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}},
          "409": {"description": "Wrong shipment state or step in progress", "schema": {"$ref": "#/definitions/Error"}},
          "422": {"description": "Payload invalid or no courier", "schema": {"$ref": "#/definitions/Error"}},
          "502": {"description": "Carrier failure", "schema": {"$ref": "#/definitions/Error"}}
        }
      }
    },
    "/api/v1/admin/orders/{ref}/invoice": {
      "post": {
        "summary": "Generate the invoice",
        "parameters": [{"$ref": "#/parameters/ref"}],
        "responses": {
          "200": {"description": "Order after the step", "schema": {"$ref": "#/definitions/Order"}},
          "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}},
          "409": {"description": "Wrong shipment state or step in progress", "schema": {"$ref": "#/definitions/Error"}},
          "422": {"description": "Payload invalid or no courier", "schema": {"$ref": "#/definitions/Error"}},
          "502": {"description": "Carrier failure", "schema": {"$ref": "#/definitions/Error"}}
        }
      }
    },
    "/api/v1/admin/orders/{ref}/manifest": {
      "post": {
        "summary": "Generate and print the manifest",
        "parameters": [{"$ref": "#/parameters/ref"}],
        "responses": {
          "200": {"description": "Order after the step", "schema": {"$ref": "#/definitions/Order"}},
          "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}},
          "409": {"description": "Wrong shipment state or step in progress", "schema": {"$ref": "#/definitions/Error"}},
          "422": {"description": "Payload invalid or no courier", "schema": {"$ref": "#/definitions/Error"}},
          "502": {"description": "Carrier failure", "schema": {"$ref": "#/definitions/Error"}}
        }
      }
    },
    "/api/v1/admin/orders/{ref}/status": {
      "patch": {
        "summary": "Move the order lifecycle",
        "parameters": [
          {"$ref": "#/parameters/ref"},
          {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStatusRequest"}}
        ],
        "responses": {
          "200": {"description": "Order", "schema": {"$ref": "#/definitions/Order"}},
          "400": {"description": "Unknown status", "schema": {"$ref": "#/definitions/Error"}},
          "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}},
          "409": {"description": "Transition not allowed", "schema": {"$ref": "#/definitions/Error"}}
        }
      }
    },
    "/api/v1/admin/shipments/{awb}/track": {
      "get": {
        "summary": "Track a shipment",
        "parameters": [{"name": "awb", "in": "path", "required": true, "type": "string"}],
        "responses": {
          "200": {"description": "Tracking", "schema": {"$ref": "#/definitions/Tracking"}},
          "502": {"description": "Carrier failure", "schema": {"$ref": "#/definitions/Error"}}
        }
      }
    }
  },
  "parameters": {
    "ref": {"name": "ref", "in": "path", "required": true, "type": "string", "description": "Order id or order number"}
  },
  "definitions": {
    "Address": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "phone": {"type": "string"},
        "email": {"type": "string"},
        "line1": {"type": "string"},
        "line2": {"type": "string"},
        "city": {"type": "string"},
        "state": {"type": "string"},
        "postcode": {"type": "string"},
        "landmark": {"type": "string"}
      }
    },
    "LineItem": {
      "type": "object",
      "required": ["product_id", "name", "unit_price", "quantity"],
      "properties": {
        "product_id": {"type": "string"},
        "name": {"type": "string"},
        "sku": {"type": "string"},
        "product_sku": {"type": "string"},
        "hsn": {"type": "string"},
        "gst_rate": {"type": "integer"},
        "unit_price": {"type": "integer", "format": "int64"},
        "quantity": {"type": "integer", "minimum": 1}
      }
    },
    "GSTRequest": {
      "type": "object",
      "properties": {
        "requested": {"type": "boolean"},
        "gstin": {"type": "string"},
        "legal_name": {"type": "string"},
        "place_of_supply": {"type": "string"},
        "tax_rate": {"type": "integer"}
      }
    },
    "GSTDisclosure": {
      "type": "object",
      "properties": {
        "requested": {"type": "boolean"},
        "gstin": {"type": "string"},
        "legal_name": {"type": "string"},
        "place_of_supply": {"type": "string"},
        "tax_rate": {"type": "integer"},
        "taxable_value": {"type": "integer", "format": "int64"},
        "tax_amount": {"type": "integer", "format": "int64"}
      }
    },
    "Pricing": {
      "type": "object",
      "properties": {
        "subtotal": {"type": "integer", "format": "int64"},
        "taxable_base": {"type": "integer", "format": "int64"},
        "tax_amount": {"type": "integer", "format": "int64"},
        "shipping_fee": {"type": "integer", "format": "int64"},
        "cod_surcharge": {"type": "integer", "format": "int64"},
        "online_fee": {"type": "integer", "format": "int64"},
        "online_fee_tax": {"type": "integer", "format": "int64"},
        "total": {"type": "integer", "format": "int64"}
      }
    },
    "CheckoutRequest": {
      "type": "object",
      "required": ["items", "shipping", "billing", "payment_method"],
      "properties": {
        "items": {"type": "array", "items": {"$ref": "#/definitions/LineItem"}},
        "shipping": {"$ref": "#/definitions/Address"},
        "billing": {"$ref": "#/definitions/Address"},
        "payment_method": {"type": "string", "enum": ["cod", "online"]},
        "gst": {"$ref": "#/definitions/GSTRequest"}
      }
    },
    "AssignAWBRequest": {
      "type": "object",
      "properties": {"courier_id": {"type": "string"}}
    },
    "UpdateStatusRequest": {
      "type": "object",
      "required": ["status"],
      "properties": {
        "status": {"type": "string", "enum": ["Pending", "Confirmed", "Processing", "Shipped", "Delivered", "Cancelled"]}
      }
    },
    "Shipment": {
      "type": "object",
      "properties": {
        "state": {"type": "string", "enum": ["NONE", "ORDER_CREATED", "AWB_ASSIGNED"]},
        "shipment_id": {"type": "string"},
        "carrier_order_id": {"type": "string"},
        "courier_name": {"type": "string"},
        "courier_id": {"type": "string"},
        "awb": {"type": "string"},
        "status_tag": {"type": "string"},
        "pickup_requested_at": {"type": "string", "format": "date-time"},
        "label_url": {"type": "string"},
        "invoice_url": {"type": "string"},
        "manifest_url": {"type": "string"},
        "create_attempted_at": {"type": "string", "format": "date-time"}
      }
    },
    "Order": {
      "type": "object",
      "properties": {
        "id": {"type": "string"},
        "number": {"type": "string"},
        "status": {"type": "string"},
        "payment_method": {"type": "string"},
        "payment_status": {"type": "string"},
        "items": {"type": "array", "items": {"$ref": "#/definitions/LineItem"}},
        "shipping": {"$ref": "#/definitions/Address"},
        "billing": {"$ref": "#/definitions/Address"},
        "address_note": {"type": "string"},
        "pricing": {"$ref": "#/definitions/Pricing"},
        "gst": {"$ref": "#/definitions/GSTDisclosure"},
        "shipment": {"$ref": "#/definitions/Shipment"},
        "created_at": {"type": "string", "format": "date-time"}
      }
    },
    "OrderSummary": {
      "type": "object",
      "properties": {
        "id": {"type": "string"},
        "number": {"type": "string"},
        "status": {"type": "string"},
        "payment_method": {"type": "string"},
        "payment_status": {"type": "string"},
        "total": {"type": "integer", "format": "int64"},
        "shipment_state": {"type": "string"},
        "awb": {"type": "string"},
        "created_at": {"type": "string", "format": "date-time"}
      }
    },
    "TrackingActivity": {
      "type": "object",
      "properties": {
        "date": {"type": "string"},
        "status": {"type": "string"},
        "activity": {"type": "string"},
        "location": {"type": "string"}
      }
    },
    "Tracking": {
      "type": "object",
      "properties": {
        "awb": {"type": "string"},
        "current_status": {"type": "string"},
        "etd": {"type": "string"},
        "track_url": {"type": "string"},
        "activities": {"type": "array", "items": {"$ref": "#/definitions/TrackingActivity"}}
      }
    },
    "Error": {
      "type": "object",
      "required": ["code", "message"],
      "properties": {
        "code": {"type": "integer"},
        "message": {"type": "string"},
        "violations": {"type": "array", "items": {"type": "string"}},
        "shipping": {"$ref": "#/definitions/Address"},
        "billing": {"$ref": "#/definitions/Address"},
        "carrier_status": {"type": "integer"}
      }
    }
  }
}`
