// Package docs is regenerated by `swag init -g cmd/server/main.go`
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/admin/login": {
            "post": {
                "description": "Check the credentials of an administrator and set a session cookie carrying the admin flag",
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "authentication"
                ],
                "summary": "Log in as administrator",
                "parameters": [
                    {
                        "description": "Administrator credentials",
                        "name": "credentials",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/auth.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Session cookie set"
                    },
                    "400": {
                        "description": "Invalid request body",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "401": {
                        "description": "Wrong login or password",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Check the credentials and set the session cookie",
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "authentication"
                ],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "User credentials",
                        "name": "credentials",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/auth.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Session cookie set"
                    },
                    "400": {
                        "description": "Invalid request body",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "401": {
                        "description": "Wrong login or password",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/auth/logout": {
            "post": {
                "description": "Clear the session cookie and revoke its token",
                "tags": [
                    "authentication"
                ],
                "summary": "Log out",
                "responses": {
                    "204": {
                        "description": "Session cookie cleared"
                    }
                }
            }
        },
        "/auth/register": {
            "post": {
                "description": "Create an account. The name may contain latin letters, digits and underscores.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "authentication"
                ],
                "summary": "Register a new user",
                "parameters": [
                    {
                        "description": "Account data",
                        "name": "user",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.RegisterRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created user",
                        "schema": {
                            "$ref": "#/definitions/service.UserResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "A user with this name already exists",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Get the overall health status of the application including database connectivity",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "Application is healthy",
                        "schema": {
                            "$ref": "#/definitions/handlers.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "Application is unhealthy",
                        "schema": {
                            "$ref": "#/definitions/handlers.HealthResponse"
                        }
                    }
                }
            }
        },
        "/health/live": {
            "get": {
                "description": "Check if the application is alive and responding",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "Application is alive",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/health/ready": {
            "get": {
                "description": "Check if the application is ready to serve requests",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "Application is ready",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "503": {
                        "description": "Application is not ready",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/match": {
            "post": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "description": "Only competitive matches between two distinct existing teams can be created.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "matches"
                ],
                "summary": "Create a match",
                "parameters": [
                    {
                        "description": "Participating teams",
                        "name": "match",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.CreateMatchRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created match",
                        "schema": {
                            "$ref": "#/definitions/service.MatchResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid teams or match type",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Administrator privileges required",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Team not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "matches"
                ],
                "summary": "Get a match",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Match ID",
                        "name": "id",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Match",
                        "schema": {
                            "$ref": "#/definitions/service.MatchResponse"
                        }
                    },
                    "400": {
                        "description": "Missing ID",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Match not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "description": "preparing -> in_progress -> finished, cancelled from any unfinished status. Finishing requires a participating winner.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "matches"
                ],
                "summary": "Change the status of a match",
                "parameters": [
                    {
                        "description": "New status",
                        "name": "match",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.EditMatchRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated match",
                        "schema": {
                            "$ref": "#/definitions/service.MatchResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid transition or winner",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Administrator privileges required",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Match not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Status changed concurrently",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/matches": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "matches"
                ],
                "summary": "List matches",
                "responses": {
                    "200": {
                        "description": "All matches",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/service.MatchResponse"
                            }
                        }
                    }
                }
            }
        },
        "/me": {
            "get": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "description": "The authenticated user including personal data",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "users"
                ],
                "summary": "Current user",
                "responses": {
                    "200": {
                        "description": "Current user",
                        "schema": {
                            "$ref": "#/definitions/service.UserResponse"
                        }
                    },
                    "401": {
                        "description": "Not authenticated",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/me/teams": {
            "get": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "users"
                ],
                "summary": "Teams of the current user",
                "responses": {
                    "200": {
                        "description": "Teams the caller is a member of",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/service.TeamResponse"
                            }
                        }
                    },
                    "401": {
                        "description": "Not authenticated",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/team": {
            "get": {
                "description": "Find a team by ID or name. Pending join requests are listed only for the team's owner and administrators.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "teams"
                ],
                "summary": "Get a team",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Team ID",
                        "name": "id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Team name",
                        "name": "name",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Team",
                        "schema": {
                            "$ref": "#/definitions/service.TeamResponse"
                        }
                    },
                    "400": {
                        "description": "Neither ID nor name given",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Team not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "description": "The caller becomes the owner. Every user in members_ids receives an invitation.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "teams"
                ],
                "summary": "Create a team",
                "parameters": [
                    {
                        "description": "Team data",
                        "name": "team",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.CreateTeamRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created team",
                        "schema": {
                            "$ref": "#/definitions/service.TeamResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Not authenticated",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Invited user not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "A team with this name already exists",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "teams"
                ],
                "summary": "Update a team",
                "parameters": [
                    {
                        "description": "Fields to change",
                        "name": "team",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.UpdateTeamRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated team",
                        "schema": {
                            "$ref": "#/definitions/service.TeamResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Caller does not manage the team",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Team not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "A team with this name already exists",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "description": "Only the owner can delete the team. Memberships, requests and participations are removed with it.",
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "teams"
                ],
                "summary": "Delete a team",
                "parameters": [
                    {
                        "description": "Team to delete",
                        "name": "team",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.TeamIDRequest"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Team deleted"
                    },
                    "403": {
                        "description": "Caller is not the owner",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Team not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/team/join/invitations": {
            "get": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "Pending invitations of the caller",
                "responses": {
                    "200": {
                        "description": "Invitations",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/service.InvitationResponse"
                            }
                        }
                    }
                }
            }
        },
        "/team/join/invite": {
            "post": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "Invite a user",
                "parameters": [
                    {
                        "description": "Team and invited user",
                        "name": "invitation",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.TeamUserRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Pending invitation",
                        "schema": {
                            "$ref": "#/definitions/service.JoinRequestResponse"
                        }
                    },
                    "403": {
                        "description": "Caller does not manage the team",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Team or user not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Already a member, invited or requested",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "description": "Accepting makes the caller a member and returns the team, declining only drops the invitation.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "Answer an invitation",
                "parameters": [
                    {
                        "description": "Answer",
                        "name": "answer",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.InvitationAnswer"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Joined team",
                        "schema": {
                            "$ref": "#/definitions/service.TeamResponse"
                        }
                    },
                    "204": {
                        "description": "Invitation declined"
                    },
                    "404": {
                        "description": "Invitation not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "Cancel an invitation",
                "parameters": [
                    {
                        "description": "Team and invited user",
                        "name": "invitation",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.TeamUserRequest"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Invitation cancelled"
                    },
                    "403": {
                        "description": "Caller does not manage the team",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Invitation not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/team/join/request": {
            "post": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "Ask to join a team",
                "parameters": [
                    {
                        "description": "Team to join",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.TeamIDRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Pending request",
                        "schema": {
                            "$ref": "#/definitions/service.JoinRequestResponse"
                        }
                    },
                    "404": {
                        "description": "Team not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Already a member, invited or requested",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "Answer a join request",
                "parameters": [
                    {
                        "description": "Answer",
                        "name": "answer",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.RequestAnswer"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Team with the new member",
                        "schema": {
                            "$ref": "#/definitions/service.TeamResponse"
                        }
                    },
                    "204": {
                        "description": "Request rejected"
                    },
                    "403": {
                        "description": "Caller does not manage the team",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Join request not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "Withdraw a join request",
                "parameters": [
                    {
                        "description": "Team",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.TeamIDRequest"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Request withdrawn"
                    },
                    "404": {
                        "description": "Join request not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/team/join/requests": {
            "get": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "Pending requests and invitations of a team",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Team ID",
                        "name": "team_id",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Pending rows",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/service.JoinRequestResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "Missing team_id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Caller does not manage the team",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Team not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/team/member": {
            "post": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "description": "Add a user to the team directly. Only the owner may add administrators.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "teams"
                ],
                "summary": "Add a member",
                "parameters": [
                    {
                        "description": "Membership",
                        "name": "member",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.TeamMemberRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created membership",
                        "schema": {
                            "$ref": "#/definitions/service.TeamMemberResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid role",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Not allowed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Team or user not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Already a member or a second owner",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "teams"
                ],
                "summary": "Change a member's role",
                "parameters": [
                    {
                        "description": "Membership and new role",
                        "name": "member",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.TeamMemberRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated membership",
                        "schema": {
                            "$ref": "#/definitions/service.TeamMemberResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid role",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Not allowed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Team or member not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Owner role cannot change",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "description": "Managers remove members, any member but the owner may leave.",
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "teams"
                ],
                "summary": "Remove a member",
                "parameters": [
                    {
                        "description": "Membership to remove",
                        "name": "member",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.TeamMemberRequest"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Member removed"
                    },
                    "403": {
                        "description": "Not allowed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Team or member not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "The owner cannot be removed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/teams": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "teams"
                ],
                "summary": "List teams",
                "responses": {
                    "200": {
                        "description": "All teams with their members",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/service.TeamResponse"
                            }
                        }
                    }
                }
            }
        },
        "/tournament": {
            "post": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "description": "Multipart form with the tournament fields and a PNG, JPEG or WEBP poster.",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tournaments"
                ],
                "summary": "Create a tournament",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tournament name",
                        "name": "name",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Description",
                        "name": "description",
                        "in": "formData"
                    },
                    {
                        "type": "integer",
                        "description": "Game ID",
                        "name": "game_id",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "file",
                        "description": "Poster image",
                        "name": "poster",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created tournament",
                        "schema": {
                            "$ref": "#/definitions/service.TournamentResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid fields or image",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Administrator privileges required",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Game not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tournaments"
                ],
                "summary": "Get a tournament",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Tournament ID",
                        "name": "id",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Tournament",
                        "schema": {
                            "$ref": "#/definitions/service.TournamentResponse"
                        }
                    },
                    "404": {
                        "description": "Tournament not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "description": "pending -> active -> finished, cancelled from pending or active.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tournaments"
                ],
                "summary": "Update a tournament",
                "parameters": [
                    {
                        "description": "Fields to change",
                        "name": "tournament",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.UpdateTournamentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated tournament",
                        "schema": {
                            "$ref": "#/definitions/service.TournamentResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid transition",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Tournament not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Status changed concurrently",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/tournament/game": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "games"
                ],
                "summary": "Get a game",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Game ID",
                        "name": "id",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Game",
                        "schema": {
                            "$ref": "#/definitions/service.GameResponse"
                        }
                    },
                    "404": {
                        "description": "Game not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "games"
                ],
                "summary": "Add a game",
                "parameters": [
                    {
                        "description": "Game",
                        "name": "game",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.CreateGameRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created game",
                        "schema": {
                            "$ref": "#/definitions/service.GameResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Name is used",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "games"
                ],
                "summary": "Rename a game",
                "parameters": [
                    {
                        "description": "Game",
                        "name": "game",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.UpdateGameRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated game",
                        "schema": {
                            "$ref": "#/definitions/service.GameResponse"
                        }
                    },
                    "404": {
                        "description": "Game not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Name is used",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/tournament/games": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "games"
                ],
                "summary": "List games",
                "responses": {
                    "200": {
                        "description": "All games",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/service.GameResponse"
                            }
                        }
                    }
                }
            }
        },
        "/tournament/member": {
            "post": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "description": "The caller must be the owner or an administrator of the team.",
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "tournaments"
                ],
                "summary": "Apply a team to a tournament",
                "parameters": [
                    {
                        "description": "Tournament and team",
                        "name": "participation",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.TournamentTeamRequest"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Application sent"
                    },
                    "403": {
                        "description": "Not allowed or tournament closed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Tournament or team not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Already applied",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "CookieAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "tournaments"
                ],
                "summary": "Accept or reject a team",
                "parameters": [
                    {
                        "description": "Participation status",
                        "name": "participation",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.TournamentMemberStatusRequest"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Status updated"
                    },
                    "400": {
                        "description": "Invalid status",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Tournament or team not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "The team did not apply",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/tournaments": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tournaments"
                ],
                "summary": "List tournaments",
                "responses": {
                    "200": {
                        "description": "All tournaments",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/service.TournamentResponse"
                            }
                        }
                    }
                }
            }
        },
        "/user": {
            "get": {
                "description": "Find a user by ID or name. Personal data is only returned to the user themself.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "users"
                ],
                "summary": "Get a user",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "User ID",
                        "name": "id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "User name",
                        "name": "name",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "User",
                        "schema": {
                            "$ref": "#/definitions/service.UserResponse"
                        }
                    },
                    "400": {
                        "description": "Neither ID nor name given",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "User not found",
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
                    "users"
                ],
                "summary": "List users",
                "responses": {
                    "200": {
                        "description": "All users",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/service.UserResponse"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "auth.LoginRequest": {
            "type": "object",
            "required": [
                "name",
                "password"
            ],
            "properties": {
                "name": {
                    "type": "string",
                    "example": "john_doe"
                },
                "password": {
                    "type": "string",
                    "example": "secret"
                }
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "error message"
                }
            }
        },
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "services": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "status": {
                    "type": "string",
                    "example": "healthy"
                },
                "timestamp": {
                    "type": "string"
                },
                "version": {
                    "type": "string",
                    "example": "1.0.0"
                }
            }
        },
        "service.CreateGameRequest": {
            "type": "object",
            "required": [
                "name",
                "short_name"
            ],
            "properties": {
                "name": {
                    "type": "string",
                    "example": "Counter-Strike 2"
                },
                "short_name": {
                    "type": "string",
                    "example": "cs2"
                }
            }
        },
        "service.CreateMatchRequest": {
            "type": "object",
            "required": [
                "first_team_id",
                "second_team_id"
            ],
            "properties": {
                "first_team_id": {
                    "type": "integer",
                    "example": 1
                },
                "second_team_id": {
                    "type": "integer",
                    "example": 2
                },
                "type": {
                    "type": "string",
                    "example": "competitive"
                }
            }
        },
        "service.CreateTeamRequest": {
            "type": "object",
            "required": [
                "name"
            ],
            "properties": {
                "members_ids": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "name": {
                    "type": "string",
                    "example": "Navi"
                }
            }
        },
        "service.EditMatchRequest": {
            "type": "object",
            "required": [
                "match_id",
                "status"
            ],
            "properties": {
                "match_id": {
                    "type": "integer",
                    "example": 1
                },
                "status": {
                    "type": "string",
                    "example": "in_progress"
                },
                "winner_id": {
                    "type": "integer",
                    "example": 1
                }
            }
        },
        "service.GameResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer",
                    "example": 1
                },
                "name": {
                    "type": "string",
                    "example": "Counter-Strike 2"
                },
                "short_name": {
                    "type": "string",
                    "example": "cs2"
                }
            }
        },
        "service.InvitationAnswer": {
            "type": "object",
            "required": [
                "accept",
                "team_id"
            ],
            "properties": {
                "accept": {
                    "type": "boolean",
                    "example": true
                },
                "team_id": {
                    "type": "integer",
                    "example": 1
                }
            }
        },
        "service.InvitationResponse": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "team": {
                    "$ref": "#/definitions/service.TeamSummary"
                },
                "type": {
                    "type": "string",
                    "example": "invite"
                }
            }
        },
        "service.JoinRequestResponse": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "team_id": {
                    "type": "integer"
                },
                "type": {
                    "type": "string",
                    "example": "invite"
                },
                "user": {
                    "$ref": "#/definitions/service.UserResponse"
                }
            }
        },
        "service.MatchResponse": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "finished_at": {
                    "type": "string"
                },
                "id": {
                    "type": "integer",
                    "example": 1
                },
                "members": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/service.TeamResponse"
                    }
                },
                "started_at": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "example": "preparing"
                },
                "team_winner_id": {
                    "type": "integer"
                },
                "type": {
                    "type": "string",
                    "example": "competitive"
                },
                "winner": {
                    "$ref": "#/definitions/service.TeamSummary"
                }
            }
        },
        "service.PersonalData": {
            "type": "object",
            "properties": {
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                }
            }
        },
        "service.RegisterRequest": {
            "type": "object",
            "required": [
                "name",
                "password"
            ],
            "properties": {
                "first_name": {
                    "type": "string",
                    "example": "John"
                },
                "last_name": {
                    "type": "string",
                    "example": "Doe"
                },
                "name": {
                    "type": "string",
                    "example": "john_doe"
                },
                "password": {
                    "type": "string",
                    "example": "secret"
                }
            }
        },
        "service.RequestAnswer": {
            "type": "object",
            "required": [
                "accept",
                "team_id",
                "user_id"
            ],
            "properties": {
                "accept": {
                    "type": "boolean",
                    "example": true
                },
                "team_id": {
                    "type": "integer",
                    "example": 1
                },
                "user_id": {
                    "type": "integer",
                    "example": 2
                }
            }
        },
        "service.TeamIDRequest": {
            "type": "object",
            "required": [
                "team_id"
            ],
            "properties": {
                "team_id": {
                    "type": "integer",
                    "example": 1
                }
            }
        },
        "service.TeamMemberRequest": {
            "type": "object",
            "required": [
                "team_id",
                "user_id"
            ],
            "properties": {
                "role": {
                    "type": "string",
                    "example": "member"
                },
                "team_id": {
                    "type": "integer",
                    "example": 1
                },
                "user_id": {
                    "type": "integer",
                    "example": 2
                }
            }
        },
        "service.TeamMemberResponse": {
            "type": "object",
            "properties": {
                "role": {
                    "type": "string",
                    "example": "member"
                },
                "user": {
                    "$ref": "#/definitions/service.UserResponse"
                }
            }
        },
        "service.TeamResponse": {
            "type": "object",
            "properties": {
                "avatar_url": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "id": {
                    "type": "integer",
                    "example": 1
                },
                "join_requests": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/service.JoinRequestResponse"
                    }
                },
                "members": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/service.TeamMemberResponse"
                    }
                },
                "name": {
                    "type": "string",
                    "example": "Navi"
                }
            }
        },
        "service.TeamSummary": {
            "type": "object",
            "properties": {
                "avatar_url": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "id": {
                    "type": "integer",
                    "example": 1
                },
                "name": {
                    "type": "string",
                    "example": "Navi"
                }
            }
        },
        "service.TeamUserRequest": {
            "type": "object",
            "required": [
                "team_id",
                "user_id"
            ],
            "properties": {
                "team_id": {
                    "type": "integer",
                    "example": 1
                },
                "user_id": {
                    "type": "integer",
                    "example": 2
                }
            }
        },
        "service.TournamentMemberStatusRequest": {
            "type": "object",
            "required": [
                "status",
                "team_id",
                "tournament_id"
            ],
            "properties": {
                "status": {
                    "type": "string",
                    "example": "accepted"
                },
                "team_id": {
                    "type": "integer",
                    "example": 1
                },
                "tournament_id": {
                    "type": "integer",
                    "example": 1
                }
            }
        },
        "service.TournamentResponse": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "game": {
                    "$ref": "#/definitions/service.GameResponse"
                },
                "id": {
                    "type": "integer",
                    "example": 1
                },
                "name": {
                    "type": "string",
                    "example": "Spring Cup"
                },
                "poster_url": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "example": "pending"
                },
                "teams": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/service.TournamentTeamResponse"
                    }
                }
            }
        },
        "service.TournamentTeamRequest": {
            "type": "object",
            "required": [
                "team_id",
                "tournament_id"
            ],
            "properties": {
                "team_id": {
                    "type": "integer",
                    "example": 1
                },
                "tournament_id": {
                    "type": "integer",
                    "example": 1
                }
            }
        },
        "service.TournamentTeamResponse": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "example": "pending"
                },
                "team": {
                    "$ref": "#/definitions/service.TeamSummary"
                }
            }
        },
        "service.UpdateGameRequest": {
            "type": "object",
            "required": [
                "id",
                "name",
                "short_name"
            ],
            "properties": {
                "id": {
                    "type": "integer",
                    "example": 1
                },
                "name": {
                    "type": "string",
                    "example": "Counter-Strike 2"
                },
                "short_name": {
                    "type": "string",
                    "example": "cs2"
                }
            }
        },
        "service.UpdateTeamRequest": {
            "type": "object",
            "required": [
                "team_id"
            ],
            "properties": {
                "avatar_url": {
                    "type": "string"
                },
                "name": {
                    "type": "string",
                    "example": "Navi"
                },
                "team_id": {
                    "type": "integer",
                    "example": 1
                }
            }
        },
        "service.UpdateTournamentRequest": {
            "type": "object",
            "required": [
                "tournament_id"
            ],
            "properties": {
                "description": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "example": "active"
                },
                "tournament_id": {
                    "type": "integer",
                    "example": 1
                }
            }
        },
        "service.UserResponse": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "id": {
                    "type": "integer",
                    "example": 1
                },
                "name": {
                    "type": "string",
                    "example": "john_doe"
                },
                "personal_data": {
                    "$ref": "#/definitions/service.PersonalData"
                }
            }
        }
    },
    "securityDefinitions": {
        "CookieAuth": {
            "description": "Session cookie set by /auth/login or /admin/login.",
            "type": "apiKey",
            "name": "access_token",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PowerCup Backend API",
	Description:      "Backend API for PowerCup: user accounts, teams with roles and invitations, matches and tournaments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
