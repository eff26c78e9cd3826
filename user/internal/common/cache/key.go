package cache

const KEY_USERS = "users:%s"
