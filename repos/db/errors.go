package db

const (
	MySQLErrorCodeDuplicateKey        = 1062
	MySQLErrorCodeForeignKeyViolation = 1452
)
