package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 用户/商家模块错误 100xx
	ErrUserExists      = 10001
	ErrUserNotFound    = 10002
	ErrAuthFailed      = 10003
	ErrTokenInvalid    = 10004
	ErrNoPermission    = 10005
	ErrPartnerExists   = 10006
	ErrPartnerNotFound = 10007
	ErrTokenMissing    = 10008

	// 菜品模块错误 200xx
	ErrFoodNotFound   = 20001
	ErrVideoRequired  = 20002
	ErrCommentInvalid = 20003

	// 订单模块错误 300xx
	ErrOrderNotFound      = 30001
	ErrOrderForbidden     = 30002
	ErrInsufficientPoints = 30003
	ErrInvalidStatus      = 30004
	ErrCouponInvalid      = 30005
	ErrMissingOrderFields = 30006
	ErrCouponRequired     = 30007

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
	ErrStorageDisabled = 50004
)
