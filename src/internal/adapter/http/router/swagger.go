package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Remittance Wallet API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Remittance Wallet API",
    "version": "1.0.0"
  },
  "paths": {
    "/api/wallet/send": {
      "post": {
        "summary": "Send money between two contacts",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {"$ref": "#/components/schemas/SendMoneyRequest"}
            }
          }
        },
        "responses": {
          "200": {"description": "Money transferred"},
          "400": {"description": "Validation error or insufficient funds"},
          "405": {"description": "Method not allowed"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/api/wallet/contacts": {
      "get": {
        "summary": "List contacts",
        "responses": {
          "200": {"description": "Contacts fetched"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/api/wallet/balance": {
      "get": {
        "summary": "List wallet balances by contact name",
        "responses": {
          "200": {"description": "Balances fetched"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/api/wallet/transactions_history": {
      "get": {
        "summary": "List transfers, newest first",
        "responses": {
          "200": {"description": "Transaction history fetched"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/healthz": {
      "get": {
        "summary": "Storage health check",
        "responses": {
          "200": {"description": "Healthy"},
          "503": {"description": "Storage unreachable"}
        }
      }
    }
  },
  "components": {
    "schemas": {
      "SendMoneyRequest": {
        "type": "object",
        "required": ["fromContactId", "toContactId", "amount"],
        "properties": {
          "fromContactId": {"type": "integer", "format": "int64", "minimum": 1},
          "toContactId": {"type": "integer", "format": "int64", "minimum": 1},
          "amount": {"type": "number", "minimum": 0.01, "maximum": 9999999999999999.99, "multipleOf": 0.01}
        }
      }
    }
  }
}`
