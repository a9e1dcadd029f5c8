package apperr

var (
	ErrInvalidCredentials  = Unauthorized("invalid credentials")
	ErrTokenMissing        = Unauthorized("authentication error: token missing")
	ErrTokenInvalid        = Unauthorized("authentication error: invalid or expired token")
	ErrUserNotFound        = NotFound("user not found")
	ErrEmailTaken          = AlreadyExists("user already exists")
	ErrWeakPassword        = InvalidArg("password must be at least 6 characters")
	ErrSelfConnection      = InvalidArg("you cannot connect with yourself")
	ErrConnectionExists    = AlreadyExists("connection or request already exists")
	ErrNotConnected        = Forbidden("you are not connected with this user")
	ErrRequestNotFound     = NotFound("request not found")
	ErrNotRequestRecipient = Forbidden("unauthorized to act on this request")
	ErrPostNotFound        = NotFound("post not found")
	ErrNotPostAuthor       = Forbidden("unauthorized to delete this post")
)
