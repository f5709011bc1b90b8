// Package docs registers the OpenAPI 2.0 document of the news API with swag,
// which gin-swagger serves under /swagger/*any.
//
// Keep in sync with the swag annotations on the handlers.
package docs

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
        "/topics": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Topics"
                ],
                "summary": "List topics",
                "description": "Returns every topic in insertion order.",
                "operationId": "listTopics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.TopicsResponse"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/articles": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Articles"
                ],
                "summary": "List articles",
                "operationId": "listArticles",
                "description": "Article summaries (no body) with comment_count. Defaults to created_at descending.\nResponses carry a weak ETag; a matching If-None-Match yields 304.",
                "parameters": [
                    {
                        "type": "string",
                        "example": "mitch",
                        "description": "Filter by topic slug",
                        "name": "topic",
                        "in": "query"
                    },
                    {
                        "enum": [
                            "article_id",
                            "title",
                            "topic",
                            "author",
                            "created_at",
                            "votes",
                            "comment_count"
                        ],
                        "type": "string",
                        "default": "created_at",
                        "description": "Sort column",
                        "name": "sort_by",
                        "in": "query"
                    },
                    {
                        "enum": [
                            "asc",
                            "desc"
                        ],
                        "type": "string",
                        "default": "desc",
                        "description": "Sort direction",
                        "name": "order",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "ETag from a previous response",
                        "name": "If-None-Match",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.ArticlesResponse"
                        }
                    },
                    "304": {
                        "description": "Not modified"
                    },
                    "400": {
                        "description": "sort_by not valid / order not valid",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "topic doesn't exist",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/articles/{article_id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Articles"
                ],
                "summary": "Get an article",
                "operationId": "getArticle",
                "parameters": [
                    {
                        "type": "integer",
                        "minimum": 0,
                        "description": "Article ID",
                        "name": "article_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.ArticleResponse"
                        }
                    },
                    "404": {
                        "description": "article_id not valid / article doesn't exist",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "patch": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Articles"
                ],
                "summary": "Change an article's votes",
                "operationId": "patchArticleVotes",
                "description": "Atomically adds inc_votes (may be negative) to the article's votes and returns the updated article.",
                "parameters": [
                    {
                        "type": "integer",
                        "minimum": 0,
                        "description": "Article ID",
                        "name": "article_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "example": "7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab",
                        "description": "Key for safe retries",
                        "name": "Idempotency-Key",
                        "in": "header"
                    },
                    {
                        "description": "Vote delta",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.PatchArticleRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handlers.ArticleResponse"
                        }
                    },
                    "400": {
                        "description": "missing inc_votes / inc_votes must be a number / inc_votes out of range",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "article_id not valid / article doesn't exist",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Idempotency-Key reused with a different inc_votes",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/articles/{article_id}/comments": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Comments"
                ],
                "summary": "List the comments of an article",
                "operationId": "listArticleComments",
                "description": "Newest first. An existing article without comments yields an empty list.",
                "parameters": [
                    {
                        "type": "integer",
                        "minimum": 0,
                        "description": "Article ID",
                        "name": "article_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.CommentsResponse"
                        }
                    },
                    "404": {
                        "description": "article_id not valid / article doesn't exist",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/users": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Users"
                ],
                "summary": "List users",
                "operationId": "listUsers",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.UsersResponse"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/users/{username}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Users"
                ],
                "summary": "Get a user",
                "operationId": "getUser",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Username",
                        "name": "username",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.UserResponse"
                        }
                    },
                    "404": {
                        "description": "username not valid / user doesn't exist",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "msg": {
                    "type": "string",
                    "example": "article doesn't exist"
                }
            }
        },
        "handlers.TopicDTO": {
            "type": "object",
            "properties": {
                "slug": {
                    "type": "string",
                    "example": "mitch"
                },
                "description": {
                    "type": "string",
                    "example": "The man, the Mitch, the legend"
                }
            }
        },
        "handlers.UserDTO": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string",
                    "example": "butter_bridge"
                },
                "name": {
                    "type": "string",
                    "example": "jonny"
                },
                "avatar_url": {
                    "type": "string",
                    "example": "https://example.com/avatar.jpg"
                }
            }
        },
        "handlers.ArticleSummaryDTO": {
            "type": "object",
            "properties": {
                "article_id": {
                    "type": "integer",
                    "example": 1
                },
                "title": {
                    "type": "string",
                    "example": "Living in the shadow of a great man"
                },
                "topic": {
                    "type": "string",
                    "example": "mitch"
                },
                "author": {
                    "type": "string",
                    "example": "butter_bridge"
                },
                "created_at": {
                    "type": "string",
                    "example": "2020-07-09T20:11:00.000Z"
                },
                "votes": {
                    "type": "integer",
                    "example": 100
                },
                "comment_count": {
                    "type": "integer",
                    "example": 11
                }
            }
        },
        "handlers.ArticleDTO": {
            "type": "object",
            "properties": {
                "article_id": {
                    "type": "integer",
                    "example": 1
                },
                "title": {
                    "type": "string",
                    "example": "Living in the shadow of a great man"
                },
                "topic": {
                    "type": "string",
                    "example": "mitch"
                },
                "author": {
                    "type": "string",
                    "example": "butter_bridge"
                },
                "created_at": {
                    "type": "string",
                    "example": "2020-07-09T20:11:00.000Z"
                },
                "votes": {
                    "type": "integer",
                    "example": 100
                },
                "comment_count": {
                    "type": "integer",
                    "example": 11
                },
                "body": {
                    "type": "string",
                    "example": "I find this existence challenging"
                }
            }
        },
        "handlers.CommentDTO": {
            "type": "object",
            "properties": {
                "comment_id": {
                    "type": "integer",
                    "example": 5
                },
                "article_id": {
                    "type": "integer",
                    "example": 1
                },
                "author": {
                    "type": "string",
                    "example": "icellusedkars"
                },
                "body": {
                    "type": "string",
                    "example": "I hate streaming noses"
                },
                "votes": {
                    "type": "integer",
                    "example": 0
                },
                "created_at": {
                    "type": "string",
                    "example": "2020-11-03T21:00:00.000Z"
                }
            }
        },
        "handlers.PatchArticleRequest": {
            "type": "object",
            "properties": {
                "inc_votes": {
                    "type": "integer",
                    "example": -5
                }
            }
        },
        "handlers.TopicsResponse": {
            "type": "object",
            "properties": {
                "topics": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handlers.TopicDTO"
                    }
                }
            }
        },
        "handlers.UsersResponse": {
            "type": "object",
            "properties": {
                "users": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handlers.UserDTO"
                    }
                }
            }
        },
        "handlers.UserResponse": {
            "type": "object",
            "properties": {
                "user": {
                    "$ref": "#/definitions/handlers.UserDTO"
                }
            }
        },
        "handlers.ArticlesResponse": {
            "type": "object",
            "properties": {
                "articles": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handlers.ArticleSummaryDTO"
                    }
                }
            }
        },
        "handlers.ArticleResponse": {
            "type": "object",
            "properties": {
                "article": {
                    "$ref": "#/definitions/handlers.ArticleDTO"
                }
            }
        },
        "handlers.CommentsResponse": {
            "type": "object",
            "properties": {
                "comments": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handlers.CommentDTO"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "News API",
	Description:      "Topics, articles, comments and users, with idempotent vote updates.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
