package models

const (
	ColumnOrderID               = "order_id"
	ColumnCustomerID            = "customer_id"
	ColumnCustomerCity          = "customer_city"
	ColumnPrice                 = "price"
	ColumnOrderApprovedAt       = "order_approved_at"
	ColumnEstimatedDeliveryDate = "order_estimated_delivery_date"

	SourceCSV      = "csv"
	SourceParquet  = "parquet"
	SourceS3       = "s3"
	SourcePostgres = "postgres"

	FormatConsole = "console"
	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatParquet = "parquet"

	// TimestampLayout is the layout the transactions table is written in.
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"

	SecondsPerDay = 86400.0
)

// RequiredColumns lists the columns every source must provide.
var RequiredColumns = []string{
	ColumnOrderID,
	ColumnCustomerID,
	ColumnCustomerCity,
	ColumnPrice,
	ColumnOrderApprovedAt,
	ColumnEstimatedDeliveryDate,
}
