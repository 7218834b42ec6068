package arr

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_client.go github.com/kasuboski/arrqueue/pkg/arr Client
