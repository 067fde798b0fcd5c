package models

import "time"

type StatusCheckCreate struct {
	ClientName string `json:"client_name"`
}

type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

type RootResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	API     string `json:"api"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type DBHealthResponse struct {
	Connected bool `json:"connected"`
}
