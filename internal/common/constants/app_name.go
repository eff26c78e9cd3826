package constants

const (
	APP_USER_SERVICE      = "user-service"
	APP_PRODUCT_SERVICE   = "product-service"
	APP_CART_SERVICE      = "cart-service"
	APP_VOUCHER_SERVICE   = "voucher-service"
	APP_ORDER_SERVICE     = "order-service"
	APP_DASHBOARD_SERVICE = "dashboard-service"
	APP_MAIN_STOREFRONT   = "main storefront"
	AUDIENCE_USER         = "audience-user"
)

const (
	URL_USER_SERVICE    = "http://user-service:8080/users"
	URL_PRODUCT_SERVICE = "http://product-service:8080/products"
	URL_CART_SERVICE    = "http://cart-service:8080/carts"
	URL_VOUCHER_SERVICE = "http://voucher-service:8080/vouchers"
	URL_ORDER_SERVICE   = "http://order-service:8080/orders"
)
