package cache

const (
	KEY_PRODUCTS     = "products:%s"
	KEY_PRODUCT_LIST = "products"
)
