package actions

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_actions.go github.com/kasuboski/arrqueue/pkg/actions Remote,ViewCache
