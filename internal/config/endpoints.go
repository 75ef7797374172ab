package config

// API endpoint paths, relative to the configured base URL.
const (
	// Home page
	EndpointBanners  = "/banners"
	EndpointConcerts = "/concerts"

	// Concerts
	EndpointConcertDetail   = "/concert/detail"
	EndpointConcertIndex    = "/concert/index"
	EndpointConcertSessions = "/concert/sessions"

	// Orders
	EndpointOrderCreate = "/order/create"
	EndpointOrderStatus = "/order/status"

	// User
	EndpointUserInfo   = "/user/info"
	EndpointUserUpdate = "/user/update"
	EndpointUserAuth   = "/user/auth"

	// Payment
	EndpointPayUnifiedOrder = "/wechatpay/unifiedorder"

	// Tickets
	EndpointTickets      = "/tickets"
	EndpointTicketVerify = "/verify"

	// WeChat login handshake
	EndpointWechatLogin = "/wechat/login"
	EndpointWechatCheck = "/wechat/check"
	EndpointWechatPhone = "/wechat/phone"
)
