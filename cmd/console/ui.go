package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"
	"github.com/tavernkeep/npc-engine/pkg/chat"
	"github.com/tavernkeep/npc-engine/pkg/npc"
	"github.com/tavernkeep/npc-engine/pkg/relationship"
)

const PlaceHolderText = "Say something..."

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config         *ConsoleConfig
	client         *http.Client
	conversationID uuid.UUID
	npcID          string
	npcName        string
	transcript     []chat.Message
	rel            *relationship.State
	chatViewport   viewport.Model
	metaViewport   viewport.Model
	textarea       textarea.Model
	ready          bool
	width          int
	height         int
	err            error
	loading        bool
	ejected        bool

	// NPC selection state
	showNPCModal bool
	npcs         []string
	selectedNPC  int
	loadingNPCs  bool

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type chatResponseMsg struct {
	response *chat.Response
	err      error
}

type relationshipMsg struct {
	rel *relationship.State
	err error
}

type npcsLoadedMsg struct {
	npcs []string
	err  error
}

type conversationCreatedMsg struct {
	response *chat.Response
	npcID    string
	err      error
}

type npcLoadedMsg struct {
	character *npc.Character
	err       error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	npcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	ejectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // red
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:       cfg,
		client:       client,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
		ready:        false,
		showNPCModal: true,
		loadingNPCs:  true,
		selectedNPC:  0,
	}
}

func (m *ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("TAVERN") + "\n\n")

	content.WriteString("Talking to:\n")
	content.WriteString(m.npcName + "\n\n")

	content.WriteString("Messages:\n")
	content.WriteString(fmt.Sprintf("%d total\n\n", len(m.transcript)))

	if m.rel != nil {
		content.WriteString("Standing:\n")
		content.WriteString(m.rel.Status.Display() + "\n\n")
		content.WriteString(fmt.Sprintf("Trust:     %d/100\n", m.rel.Trust))
		content.WriteString(fmt.Sprintf("Respect:   %d/100\n", m.rel.Respect))
		content.WriteString(fmt.Sprintf("Affection: %d/100\n", m.rel.Affection))
		content.WriteString(fmt.Sprintf("Fear:      %d/100\n", m.rel.Fear))
		content.WriteString(fmt.Sprintf("\nVisits: %d\n", m.rel.Interactions))
		if m.rel.Vendetta {
			content.WriteString(errorStyle.Render("Vendetta sworn\n"))
		}
	}

	if m.ejected {
		content.WriteString("\n" + ejectedStyle.Render("THROWN OUT") + "\n")
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /rel: Standing\n")
	content.WriteString("• /copy: Copy last reply\n")

	return content.String()
}

// writeChatContent builds the chat content from the transcript for the
// current viewport width
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding

	var content strings.Builder
	content.WriteString(titleStyle.Render("NPC ENGINE") + "\n\n")
	content.WriteString("You push open the tavern door.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth-6)) + "\n\n")

	for _, msg := range m.transcript {
		switch msg.Role {
		case chat.SpeakerNPC:
			content.WriteString(formatNPCResponse(m.npcName, msg.Content, chatWidth) + "\n\n")
		case chat.SpeakerPlayer:
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(msg.Content, chatWidth-6) + "\n\n")
		}
	}

	if m.ejected {
		content.WriteString(ejectedStyle.Render("You have been thrown out. This conversation is over.") + "\n\n")
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func formatNPCResponse(name, response string, width int) string {
	prefix := name + ": "
	wrapped := wordwrap.String(response, width-len(prefix))
	return npcStyle.Render(prefix) + wrapped
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showNPCModal {
		return m.loadNPCs()
	}
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle NPC modal first
	if m.showNPCModal {
		return m.updateNPCModal(msg)
	}

	// Handle quit modal second
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chatWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - chatWidth - 6

		m.chatViewport.Width = chatWidth - 2
		m.chatViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(chatWidth - 4)

		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading || m.ejected {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0

			m.transcript = append(m.transcript, chat.Message{
				Role:    chat.SpeakerPlayer,
				Content: input,
			})
			m.writeChatContent()

			return m, tea.Batch(m.sendChatMessage(input), progressTick())
		}

	case chatResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.writeChatContent()
			currentContent := m.chatViewport.View()
			errorMsg := errorStyle.Render("Error: "+msg.err.Error()) + "\n\n"
			m.chatViewport.SetContent(currentContent + errorMsg)
		} else {
			m.transcript = msg.response.Transcript
			if msg.response.Ejected {
				m.ejected = true
			}
			m.writeChatContent()
		}
		m.chatViewport.GotoBottom()
		return m, m.refreshRelationship()

	case relationshipMsg:
		if msg.err == nil && msg.rel != nil {
			m.rel = msg.rel
			m.metaViewport.SetContent(m.writeMetadata())
		}

	case npcLoadedMsg:
		if msg.err == nil && msg.character != nil && msg.character.Name() != "" {
			m.npcName = msg.character.Name()
			m.writeChatContent()
			m.metaViewport.SetContent(m.writeMetadata())
		}

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))

	switch cmd {
	case "/help":
		helpText := `
Commands:
• /help - Show this help
• /rel - Show your standing with this NPC
• /copy - Copy the last reply to the clipboard
• Ctrl+C - Quit

How to play:
• Type what you want to say and press Enter
• Mind your manners; the keeper remembers
`
		currentContent := m.chatViewport.View()
		m.chatViewport.SetContent(currentContent + titleStyle.Render("Help:") + helpText + "\n")
		m.chatViewport.GotoBottom()

	case "/rel":
		var relText strings.Builder
		relText.WriteString(titleStyle.Render("Standing:") + "\n")
		if m.rel == nil {
			relText.WriteString("You haven't made an impression yet.\n")
		} else {
			relText.WriteString(fmt.Sprintf("%s: trust %d, respect %d, affection %d, fear %d\n",
				m.rel.Status.Display(), m.rel.Trust, m.rel.Respect, m.rel.Affection, m.rel.Fear))
			for _, ev := range m.rel.MemorableEvents {
				relText.WriteString(fmt.Sprintf("• %s (%+d)\n", ev.Description, ev.Impact))
			}
		}
		relText.WriteString("\n")

		currentContent := m.chatViewport.View()
		m.chatViewport.SetContent(currentContent + relText.String())
		m.chatViewport.GotoBottom()

	case "/copy":
		line := m.lastNPCLine()
		currentContent := m.chatViewport.View()
		if line == "" {
			m.chatViewport.SetContent(currentContent + promptStyle.Render("Nothing to copy yet.") + "\n")
		} else if err := clipboard.WriteAll(line); err != nil {
			m.chatViewport.SetContent(currentContent + errorStyle.Render("Copy failed: "+err.Error()) + "\n")
		} else {
			m.chatViewport.SetContent(currentContent + promptStyle.Render("Copied last reply to clipboard.") + "\n")
		}
		m.chatViewport.GotoBottom()
	}

	m.textarea.Reset()
	return m, nil
}

func (m ConsoleUI) lastNPCLine() string {
	for i := len(m.transcript) - 1; i >= 0; i-- {
		if m.transcript[i].Role == chat.SpeakerNPC {
			return m.transcript[i].Content
		}
	}
	return ""
}

func (m ConsoleUI) sendChatMessage(message string) tea.Cmd {
	return func() tea.Msg {
		resp, err := sendChat(m.client, m.config.APIBaseURL, m.conversationID, message)
		return chatResponseMsg{resp, err}
	}
}

func (m ConsoleUI) refreshRelationship() tea.Cmd {
	return func() tea.Msg {
		rel, err := getRelationship(m.client, m.config.APIBaseURL, m.npcID)
		return relationshipMsg{rel, err}
	}
}

func (m ConsoleUI) loadNPCs() tea.Cmd {
	return func() tea.Msg {
		npcs, err := listNPCs(m.client, m.config.APIBaseURL)
		return npcsLoadedMsg{npcs, err}
	}
}

func (m ConsoleUI) startConversation(npcID string) tea.Cmd {
	return func() tea.Msg {
		resp, err := createConversation(m.client, m.config.APIBaseURL, npcID)
		return conversationCreatedMsg{resp, npcID, err}
	}
}

func (m ConsoleUI) loadNPC(npcID string) tea.Cmd {
	return func() tea.Msg {
		c, err := getNPC(m.client, m.config.APIBaseURL, npcID)
		return npcLoadedMsg{c, err}
	}
}

func (m ConsoleUI) updateNPCModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case npcsLoadedMsg:
		m.loadingNPCs = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.npcs = msg.npcs
		}

	case conversationCreatedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.conversationID = msg.response.ConversationID
			m.npcID = msg.npcID
			m.npcName = displayName(msg.npcID)
			m.transcript = msg.response.Transcript
			m.showNPCModal = false
			if m.width > 0 && m.height > 0 {
				chatWidth := int(float64(m.width)*0.75) - 4
				metaWidth := m.width - chatWidth - 6
				m.chatViewport.Width = chatWidth - 2
				m.chatViewport.Height = m.height - 7
				m.metaViewport.Width = metaWidth - 2
				m.metaViewport.Height = m.height - 4
				m.textarea.SetWidth(chatWidth - 4)
			}
			m.writeChatContent()
			m.metaViewport.SetContent(m.writeMetadata())
			m.textarea.Focus()
			m.ready = true
			return m, tea.Batch(textarea.Blink, m.refreshRelationship(), m.loadNPC(msg.npcID))
		}
		return m, textarea.Blink

	case tea.KeyMsg:
		if m.loadingNPCs {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		if m.err != nil {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				m.showQuitModal = true
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.selectedNPC > 0 {
				m.selectedNPC--
			}
		case tea.KeyDown:
			if m.selectedNPC < len(m.npcs)-1 {
				m.selectedNPC++
			}
		case tea.KeyEnter:
			if len(m.npcs) > 0 {
				m.loading = true
				return m, m.startConversation(m.npcs[m.selectedNPC])
			}
		}
	}

	return m, nil
}

// displayName turns an NPC file ID like "greta" or "old_tom" into a
// readable placeholder. The real name replaces it once the character
// record loads.
func displayName(id string) string {
	parts := strings.Split(id, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.showNPCModal {
					return m, nil
				}
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Leave the Tavern?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to walk out?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to stay, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderNPCModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	if m.loadingNPCs {
		content.WriteString(modalTitleStyle.Render("Looking Around..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Seeing who's in the tavern tonight..."))
	} else if m.err != nil {
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to load NPCs: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	} else if m.loading {
		content.WriteString(modalTitleStyle.Render("Approaching..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Catching their attention..."))
	} else {
		content.WriteString(modalTitleStyle.Render("Who do you approach?"))
		content.WriteString("\n\n")

		for i, id := range m.npcs {
			if i == m.selectedNPC {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", displayName(id))))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", displayName(id))))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showNPCModal {
		return m.renderNPCModal()
	}

	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30 // fallback before sizing
	}

	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓") // Blinking effect at the progress point
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
