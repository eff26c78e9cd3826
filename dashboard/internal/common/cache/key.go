package cache

const KEY_DASHBOARD_STATS = "dashboard:stats"
