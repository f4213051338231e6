// Package service implements the coordinator: it classifies incoming
// queries, routes them to specialized agents, and aggregates the results.
package service

import (
	"github.com/MQDC-Tech/CustomerCare-AI/internal/adapter/agentclient"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/adapter/llm"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/adapter/notify"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/classify"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/config"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/route"

	store "github.com/MQDC-Tech/CustomerCare-AI/internal/repository"
)

type Service struct {
	store        store.Store
	classifier   *classify.Classifier
	router       *route.Router
	agentClient  *agentclient.Client
	llmClient    llm.LLMClient
	notifyClient *notify.Client
	config       *config.Config
}

func New(st store.Store, classifier *classify.Classifier, router *route.Router, agentClient *agentclient.Client, llmClient llm.LLMClient, notifyClient *notify.Client, cfg *config.Config) *Service {
	return &Service{
		store:        st,
		classifier:   classifier,
		router:       router,
		agentClient:  agentClient,
		llmClient:    llmClient,
		notifyClient: notifyClient,
		config:       cfg,
	}
}
