package cache

const KEY_ORDERS = "orders:%s"
