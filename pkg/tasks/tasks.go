// Package tasks defines the structure for tasks that are sent to Kafka.
package tasks

// ProductIndexTask represents the data structure for a product vectorization job.
type ProductIndexTask struct {
	ProductKey string `json:"product_key"`
}
