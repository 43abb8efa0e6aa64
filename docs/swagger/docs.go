// Package swagger 由 swag init -g cmd/tipjar-server/main.go -o docs/swagger 生成，注释变更后重新生成
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/providers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Wallet"],
                "summary": "钱包连接器列表",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/state": {
            "get": {
                "description": "返回钱包连接状态、输入金额、tips 展示值以及在途标记",
                "produces": ["application/json"],
                "tags": ["TipJar"],
                "summary": "会话状态",
                "parameters": [
                    {"type": "string", "description": "会话 ID，未提供时使用 cookie", "name": "X-Session-ID", "in": "header"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Response"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/view.State"}}}
                            ]
                        }
                    }
                }
            }
        },
        "/api/v1/tips/donate": {
            "post": {
                "description": "发送 donate(amount) 并等待上链，成功后刷新一次 tips",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["TipJar"],
                "summary": "捐赠",
                "parameters": [
                    {"description": "Donate Request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.DonateRequest"}}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Response"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/tipjar.DonationResult"}}}
                            ]
                        }
                    }
                }
            }
        },
        "/api/v1/tips/refresh": {
            "post": {
                "description": "调用 viewTipsOf(当前地址)",
                "produces": ["application/json"],
                "tags": ["TipJar"],
                "summary": "刷新 tips",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/wallet/connect": {
            "post": {
                "description": "使用指定的连接器解锁账户，已连接时返回当前地址",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Wallet"],
                "summary": "连接钱包",
                "parameters": [
                    {"description": "Connect Request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.ConnectRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/wallet/disconnect": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Wallet"],
                "summary": "断开钱包",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/health": {
            "get": {
                "description": "Report liveness together with the bound contract and network",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Check system health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "request.ConnectRequest": {
            "type": "object",
            "required": ["provider"],
            "properties": {"provider": {"type": "string", "maxLength": 32}}
        },
        "request.DonateRequest": {
            "type": "object",
            "properties": {"amount": {"type": "string"}}
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "msg": {"type": "string"}
            }
        },
        "tipjar.DonationResult": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "block_number": {"type": "integer"},
                "tips": {"type": "string"},
                "tx_hash": {"type": "string"},
                "tx_url": {"type": "string"}
            }
        },
        "view.State": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "amount": {"type": "string"},
                "connected": {"type": "boolean"},
                "contract": {"type": "string"},
                "fetching": {"type": "boolean"},
                "last_tx_url": {"type": "string"},
                "network": {"type": "string"},
                "notice": {"type": "string"},
                "provider": {"type": "string"},
                "providers": {"type": "array", "items": {"type": "string"}},
                "sending": {"type": "boolean"},
                "tips": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Encrypted Tip Jar API",
	Description:      "Wallet session, donate(uint256) and viewTipsOf(address) against the tip jar contract on Sepolia",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
