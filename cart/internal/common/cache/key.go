package cache

const KEY_CARTS_BY_USER_ID = "carts:user:%s"
