// services/agent_service.go
package services

import (
	"errors"
	"log"
	"strings"

	"bounty-board-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AgentService manages the local agent registry. Reputation lives in two
// places on purpose: local counters here, and the external identity service
// fed through the notifier queue.
type AgentService struct {
	DB *gorm.DB
}

func NewAgentService(db *gorm.DB) *AgentService {
	return &AgentService{DB: db}
}

// EnsureAgent creates the registry row on first contact (idempotent).
func (s *AgentService) EnsureAgent(address, name string, capabilities []string) (*models.Agent, error) {
	if s.DB == nil {
		return &models.Agent{Address: address, Name: name, Capabilities: capabilities}, nil
	}

	var agent models.Agent
	err := s.DB.Where("address = ?", address).First(&agent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		agent = models.Agent{
			Address:      address,
			Name:         name,
			Capabilities: capabilities,
		}
		if err := s.DB.Create(&agent).Error; err != nil {
			return nil, err
		}
		log.Printf("👤 Registered new agent %s (%s)", address, name)
		return &agent, nil
	}
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// RegisterHandler handles POST /s/agents/register.
func (s *AgentService) RegisterHandler(c *fiber.Ctx) error {
	address, _ := c.Locals("agent_address").(string)
	if address == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "agent address missing", "code": CodeUnauthorized})
	}

	var req struct {
		Name         string   `json:"name"`
		Capabilities []string `json:"capabilities"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	agent, err := s.EnsureAgent(address, req.Name, req.Capabilities)
	if err != nil {
		log.Printf("DB Error registering agent %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to register agent"})
	}
	return c.Status(fiber.StatusCreated).JSON(agent)
}

// GetAgentHandler handles GET /agents/:address.
func (s *AgentService) GetAgentHandler(c *fiber.Ctx) error {
	if s.DB == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "agent registry unavailable in memory-only mode", "code": CodeNotFound})
	}

	var agent models.Agent
	if err := s.DB.Where("address = ?", c.Params("address")).First(&agent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "agent not found", "code": CodeNotFound})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(agent)
}
