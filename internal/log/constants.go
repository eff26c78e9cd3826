package log

const (
	KeyAppName            = "app"
	KeyRequestID          = "requestId"
	KeyProcess            = "process"
	KeyTag                = "tag"
	KeyConfig             = "config"
	KeyToken              = "token"
	KeyEmail              = "email"
	KeyUserID             = "userId"
	KeyCart               = "cart"
	KeyCartID             = "cartId"
	KeyCartItemID         = "cartItemId"
	KeyCartItems          = "cartItems"
	KeyProduct            = "product"
	KeyProductID          = "productId"
	KeyProducts           = "products"
	KeyBrandID            = "brandId"
	KeyCategoryID         = "categoryId"
	KeyOrder              = "order"
	KeyOrderID            = "orderId"
	KeyOrders             = "orders"
	KeyOrderItems         = "orderItems"
	KeyVoucher            = "voucher"
	KeyVoucherCode        = "voucherCode"
	KeySubtotal           = "subtotal"
	KeyDiscount           = "discount"
	KeyQuantity           = "quantity"
	KeyStock              = "stock"
	KeySessionID          = "sessionId"
	KeyCacheKey           = "cacheKey"
	KeyJSONCache          = "jsonCache"
	KeyDbURL              = "dbUrl"
	KeyPathValues         = "pathValues"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestIP          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestProcessedAt = "requestProcessedAt"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
)
