package models

import "encoding/json"

// NodeMode is the role of the panel in a multi-node deployment.
type NodeMode string

const (
	NodeModeStandalone NodeMode = "standalone"
	NodeModeMaster     NodeMode = "master"
	NodeModeWorker     NodeMode = "worker"
)

// NodeModeInfo is the nodeMode endpoint payload.
type NodeModeInfo struct {
	Mode       NodeMode `json:"mode"`
	IsReadOnly bool     `json:"isReadOnly"`
}

type NodeStatus string

const (
	NodeStatusOnline  NodeStatus = "online"
	NodeStatusOffline NodeStatus = "offline"
	NodeStatusError   NodeStatus = "error"
)

// Node is a worker registered with a master panel.
type Node struct {
	ID           uint            `json:"id"`
	NodeID       string          `json:"nodeId,omitempty"`
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	ExternalHost string          `json:"externalHost,omitempty"`
	ExternalPort int             `json:"externalPort,omitempty"`
	Enable       bool            `json:"enable"`
	Status       NodeStatus      `json:"status"`
	LastSeen     int64           `json:"lastSeen,omitempty"`
	LastSync     int64           `json:"lastSync,omitempty"`
	Version      string          `json:"version,omitempty"`
	SystemInfo   json.RawMessage `json:"systemInfo,omitempty"`
	Country      string          `json:"country,omitempty"`
	City         string          `json:"city,omitempty"`
	Flag         string          `json:"flag,omitempty"`
	IsPremium    bool            `json:"isPremium,omitempty"`
	Latency      int             `json:"latency,omitempty"`
	CreatedAt    int64           `json:"createdAt,omitempty"`
	UpdatedAt    int64           `json:"updatedAt,omitempty"`
}

// NodeToken is an invitation a worker uses to register with the master.
type NodeToken struct {
	ID        uint   `json:"id"`
	Token     string `json:"token"`
	Name      string `json:"name"`
	ExpiresAt int64  `json:"expiresAt"`
	Used      bool   `json:"used"`
	UsedBy    string `json:"usedBy,omitempty"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

// NodeOnlines is the online snapshot of a single node.
type NodeOnlines struct {
	NodeID   uint     `json:"nodeId"`
	NodeName string   `json:"nodeName"`
	Inbound  []string `json:"inbound"`
	Outbound []string `json:"outbound"`
	User     []string `json:"user"`
}
