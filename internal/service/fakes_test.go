package service

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"taskboard/internal/mailer"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memberKey struct {
	userID  uuid.UUID
	boardID uuid.UUID
}

// memStore is an in-memory stand-in for the postgres repositories.
type memStore struct {
	mu          sync.Mutex
	clock       time.Time
	users       map[uuid.UUID]model.User
	boards      map[uuid.UUID]model.Board
	columns     map[uuid.UUID]model.Column
	tasks       map[uuid.UUID]model.Task
	members     map[memberKey]bool
	invitations map[uuid.UUID]model.Invitation
	assignments map[uuid.UUID]model.Assignment
}

func newMemStore() *memStore {
	return &memStore{
		clock:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:       map[uuid.UUID]model.User{},
		boards:      map[uuid.UUID]model.Board{},
		columns:     map[uuid.UUID]model.Column{},
		tasks:       map[uuid.UUID]model.Task{},
		members:     map[memberKey]bool{},
		invitations: map[uuid.UUID]model.Invitation{},
		assignments: map[uuid.UUID]model.Assignment{},
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) boardWithOwner(id uuid.UUID) model.Board {
	b := s.boards[id]
	b.Owner = s.users[b.OwnerID]
	return b
}

type fakeUsers struct{ *memStore }

func (r fakeUsers) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.New()
	r.users[user.ID] = *user
	return nil
}

func (r fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r fakeUsers) ListExcept(_ context.Context, id uuid.UUID) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []model.User
	for _, u := range r.users {
		if u.ID != id {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

func (r fakeUsers) MarkVerified(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.users[id]
	u.Verified = true
	r.users[id] = u
	return nil
}

type fakeBoards struct{ *memStore }

func (r fakeBoards) CreateWithDefaults(_ context.Context, board *model.Board, invitations []model.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	board.ID = uuid.New()
	r.boards[board.ID] = *board
	r.members[memberKey{board.OwnerID, board.ID}] = true
	board.Columns = nil
	for i, name := range model.DefaultColumns {
		c := model.Column{ID: uuid.New(), BoardID: board.ID, Name: name, Sequence: i + 1}
		r.columns[c.ID] = c
		board.Columns = append(board.Columns, c)
	}
	for i := range invitations {
		invitations[i].ID = uuid.New()
		invitations[i].BoardID = board.ID
		invitations[i].CreatedAt = r.tick()
		r.invitations[invitations[i].ID] = invitations[i]
	}
	return nil
}

func (r fakeBoards) GetByID(_ context.Context, id uuid.UUID) (*model.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[id]; !ok {
		return nil, nil
	}
	b := r.boardWithOwner(id)
	b.Columns = nil
	for _, c := range r.columns {
		if c.BoardID == id {
			b.Columns = append(b.Columns, c)
		}
	}
	sort.Slice(b.Columns, func(i, j int) bool { return b.Columns[i].Sequence < b.Columns[j].Sequence })
	return &b, nil
}

func (r fakeBoards) ListForMember(_ context.Context, userID uuid.UUID, query string, limit, offset int) ([]model.Board, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []model.Board
	for id, b := range r.boards {
		if r.members[memberKey{userID, id}] && strings.Contains(strings.ToLower(b.Name), strings.ToLower(query)) {
			matches = append(matches, r.boardWithOwner(id))
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	total := int64(len(matches))
	if offset >= len(matches) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], total, nil
}

func (r fakeBoards) Update(_ context.Context, board *model.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.boards[board.ID]
	b.Name, b.Key, b.Description = board.Name, board.Key, board.Description
	r.boards[board.ID] = b
	return nil
}

func (r fakeBoards) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[id]; !ok {
		return repository.ErrBoardNotFound
	}
	delete(r.boards, id)
	for k, a := range r.assignments {
		if a.BoardID == id {
			delete(r.assignments, k)
		}
	}
	for k, t := range r.tasks {
		if t.BoardID == id {
			delete(r.tasks, k)
		}
	}
	for k, c := range r.columns {
		if c.BoardID == id {
			delete(r.columns, k)
		}
	}
	for k := range r.members {
		if k.boardID == id {
			delete(r.members, k)
		}
	}
	for k, inv := range r.invitations {
		if inv.BoardID == id {
			delete(r.invitations, k)
		}
	}
	return nil
}

type fakeMembers struct{ *memStore }

func (r fakeMembers) IsMember(_ context.Context, userID, boardID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.members[memberKey{userID, boardID}], nil
}

func (r fakeMembers) ListByBoard(_ context.Context, boardID uuid.UUID) ([]model.MemberView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var members []model.MemberView
	for k := range r.members {
		if k.boardID == boardID {
			u := r.users[k.userID]
			members = append(members, model.MemberView{UserID: u.ID, Email: u.Email, DisplayName: u.DisplayName})
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Email < members[j].Email })
	return members, nil
}

type fakeColumns struct{ *memStore }

func (r fakeColumns) Create(_ context.Context, column *model.Column) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[column.BoardID]; !ok {
		return repository.ErrBoardNotFound
	}
	max := 0
	for _, c := range r.columns {
		if c.BoardID == column.BoardID && c.Sequence > max {
			max = c.Sequence
		}
	}
	column.ID = uuid.New()
	column.Sequence = max + 1
	r.columns[column.ID] = *column
	return nil
}

func (r fakeColumns) GetByID(_ context.Context, id uuid.UUID) (*model.Column, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.columns[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r fakeColumns) GetByBoardID(_ context.Context, boardID uuid.UUID) ([]model.Column, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var columns []model.Column
	for _, c := range r.columns {
		if c.BoardID == boardID {
			columns = append(columns, c)
		}
	}
	sort.Slice(columns, func(i, j int) bool { return columns[i].Sequence < columns[j].Sequence })
	return columns, nil
}

func (r fakeColumns) Rename(_ context.Context, id uuid.UUID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.columns[id]
	c.Name = name
	r.columns[id] = c
	return nil
}

func (r fakeColumns) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for taskID, t := range r.tasks {
		if t.ColumnID != id {
			continue
		}
		for k, a := range r.assignments {
			if a.TaskID == taskID {
				delete(r.assignments, k)
			}
		}
		delete(r.tasks, taskID)
	}
	delete(r.columns, id)
	return nil
}

type fakeTasks struct{ *memStore }

// CreateWithSequence reads the max and writes the task under separate
// critical sections, like an unlocked read-then-insert against a database.
func (r fakeTasks) CreateWithSequence(_ context.Context, task *model.Task) error {
	r.mu.Lock()
	if _, ok := r.boards[task.BoardID]; !ok {
		r.mu.Unlock()
		return repository.ErrBoardNotFound
	}
	max := 0
	for _, t := range r.tasks {
		if t.BoardID == task.BoardID && t.Sequence > max {
			max = t.Sequence
		}
	}
	r.mu.Unlock()

	runtime.Gosched()

	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = uuid.New()
	task.Sequence = max + 1
	task.Position = task.Sequence
	r.tasks[task.ID] = *task
	return nil
}

func (r fakeTasks) GetByID(_ context.Context, id uuid.UUID) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	t.Assignee = r.users[t.AssigneeID]
	t.Board = r.boards[t.BoardID]
	return &t, nil
}

func (r fakeTasks) ListByBoard(_ context.Context, boardID uuid.UUID) ([]model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var tasks []model.Task
	for _, t := range r.tasks {
		if t.BoardID == boardID {
			t.Assignee = r.users[t.AssigneeID]
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Position < tasks[j].Position })
	return tasks, nil
}

func (r fakeTasks) UpdateDescription(_ context.Context, id uuid.UUID, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return repository.ErrTaskNotFound
	}
	t.Description = description
	r.tasks[id] = t
	return nil
}

func (r fakeTasks) UpdateAssignee(_ context.Context, id, assigneeID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return repository.ErrTaskNotFound
	}
	t.AssigneeID = assigneeID
	r.tasks[id] = t
	return nil
}

func (r fakeTasks) Reorder(_ context.Context, boardID uuid.UUID, order []model.TaskOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range order {
		if t, ok := r.tasks[item.TaskID]; !ok || t.BoardID != boardID {
			return repository.ErrTaskNotFound
		}
	}
	for i, item := range order {
		t := r.tasks[item.TaskID]
		t.Position = i + 1
		t.ColumnID = item.ColumnID
		r.tasks[item.TaskID] = t
	}
	return nil
}

func (r fakeTasks) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	for k, a := range r.assignments {
		if a.TaskID == id {
			delete(r.assignments, k)
		}
	}
	delete(r.tasks, id)
	return nil
}

type fakeInvitations struct{ *memStore }

// Create rejects a second pending invitation for the same recipient and
// board, like the uq_invitations_pending index.
func (r fakeInvitations) Create(_ context.Context, invitation *model.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if invitation.Status == model.InvitationPending {
		for _, inv := range r.invitations {
			if inv.RecipientID == invitation.RecipientID && inv.BoardID == invitation.BoardID && inv.Status == model.InvitationPending {
				return fmt.Errorf("create invitation: %w (uq_invitations_pending)", repository.ErrDuplicate)
			}
		}
	}
	invitation.ID = uuid.New()
	invitation.CreatedAt = r.tick()
	r.invitations[invitation.ID] = *invitation
	return nil
}

func (r fakeInvitations) FindPendingForBoard(_ context.Context, recipientID, boardID uuid.UUID) (*model.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invitations {
		if inv.RecipientID == recipientID && inv.BoardID == boardID && inv.Status == model.InvitationPending {
			return &inv, nil
		}
	}
	return nil, nil
}

func (r fakeInvitations) Find(_ context.Context, recipientID, senderID, boardID uuid.UUID, statuses ...model.InvitationStatus) (*model.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invitations {
		if inv.RecipientID != recipientID || inv.SenderID != senderID || inv.BoardID != boardID {
			continue
		}
		if len(statuses) == 0 {
			return &inv, nil
		}
		for _, st := range statuses {
			if inv.Status == st {
				return &inv, nil
			}
		}
	}
	return nil, nil
}

func (r fakeInvitations) Accept(_ context.Context, invitation *model.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invitations[invitation.ID]
	if !ok || inv.Status != model.InvitationPending {
		return repository.ErrInvitationNotFound
	}
	r.members[memberKey{inv.RecipientID, inv.BoardID}] = true
	inv.Status = model.InvitationAccepted
	r.invitations[inv.ID] = inv
	invitation.Status = model.InvitationAccepted
	return nil
}

func (r fakeInvitations) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.invitations, id)
	return nil
}

func (r fakeInvitations) ListForRecipient(_ context.Context, recipientID uuid.UUID) ([]model.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var invitations []model.Invitation
	for _, inv := range r.invitations {
		if inv.RecipientID == recipientID {
			inv.Sender = r.users[inv.SenderID]
			inv.Recipient = r.users[inv.RecipientID]
			inv.Board = r.boardWithOwner(inv.BoardID)
			invitations = append(invitations, inv)
		}
	}
	sort.Slice(invitations, func(i, j int) bool { return invitations[i].CreatedAt.After(invitations[j].CreatedAt) })
	return invitations, nil
}

func (r fakeInvitations) CountUnseen(_ context.Context, recipientID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, inv := range r.invitations {
		if inv.RecipientID == recipientID && !inv.Seen {
			n++
		}
	}
	return n, nil
}

func (r fakeInvitations) MarkAllSeen(_ context.Context, recipientID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, inv := range r.invitations {
		if inv.RecipientID == recipientID {
			inv.Seen = true
			r.invitations[id] = inv
		}
	}
	return nil
}

type fakeAssignments struct{ *memStore }

func (r fakeAssignments) Replace(_ context.Context, assignment *model.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.assignments {
		if a.AssigneeID == assignment.AssigneeID && a.TaskID == assignment.TaskID {
			delete(r.assignments, id)
		}
	}
	assignment.ID = uuid.New()
	assignment.CreatedAt = r.tick()
	r.assignments[assignment.ID] = *assignment
	return nil
}

func (r fakeAssignments) ListForAssignee(_ context.Context, assigneeID uuid.UUID) ([]model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var assignments []model.Assignment
	for _, a := range r.assignments {
		if a.AssigneeID == assigneeID {
			a.Sender = r.users[a.SenderID]
			a.Assignee = r.users[a.AssigneeID]
			a.Task = r.tasks[a.TaskID]
			a.Task.Board = r.boards[a.Task.BoardID]
			assignments = append(assignments, a)
		}
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].CreatedAt.After(assignments[j].CreatedAt) })
	return assignments, nil
}

func (r fakeAssignments) CountUnseen(_ context.Context, assigneeID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.assignments {
		if a.AssigneeID == assigneeID && !a.Seen {
			n++
		}
	}
	return n, nil
}

func (r fakeAssignments) MarkAllSeen(_ context.Context, assigneeID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.assignments {
		if a.AssigneeID == assigneeID {
			a.Seen = true
			r.assignments[id] = a
		}
	}
	return nil
}

type sentEvent struct {
	userID  uuid.UUID
	event   string
	payload any
}

// recordingNotifier records every notify attempt and delivers only to
// users marked online.
type recordingNotifier struct {
	mu        sync.Mutex
	online    map[uuid.UUID]bool
	attempts  []sentEvent
	delivered []sentEvent
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{online: map[uuid.UUID]bool{}}
}

func (n *recordingNotifier) Notify(userID uuid.UUID, event string, payload any) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	e := sentEvent{userID: userID, event: event, payload: payload}
	n.attempts = append(n.attempts, e)
	if !n.online[userID] {
		return false
	}
	n.delivered = append(n.delivered, e)
	return true
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

// testEnv wires every service over one memStore.
type testEnv struct {
	store         *memStore
	notifier      *recordingNotifier
	guard         *Guard
	boards        *BoardService
	columns       *ColumnService
	tasks         *TaskService
	invitations   *InvitationService
	assignments   *AssignmentService
	notifications *NotificationService
}

func newTestEnv() *testEnv {
	return newTestEnvWithNotifier(nil)
}

func newTestEnvWithNotifier(notifier Notifier) *testEnv {
	store := newMemStore()
	recorder := newRecordingNotifier()
	if notifier == nil {
		notifier = recorder
	}

	users := fakeUsers{store}
	boards := fakeBoards{store}
	members := fakeMembers{store}
	columns := fakeColumns{store}
	tasks := fakeTasks{store}
	invitations := fakeInvitations{store}
	assignments := fakeAssignments{store}

	guard := NewGuard(members, boards)
	invitationService := NewInvitationService(invitations, members, users, guard, notifier)
	assignmentService := NewAssignmentService(assignments, tasks, users, guard, notifier)

	return &testEnv{
		store:         store,
		notifier:      recorder,
		guard:         guard,
		boards:        NewBoardService(boards, members, users, guard, notifier),
		columns:       NewColumnService(columns, guard),
		tasks:         NewTaskService(tasks, columns, guard),
		invitations:   invitationService,
		assignments:   assignmentService,
		notifications: NewNotificationService(invitations, assignments, invitationService, assignmentService),
	}
}

func (e *testEnv) addUser(email string) model.User {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	local, _, _ := strings.Cut(email, "@")
	u := model.User{ID: uuid.New(), Email: email, DisplayName: local, Verified: true}
	e.store.users[u.ID] = u
	return u
}

func (e *testEnv) addMember(userID, boardID uuid.UUID) {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	e.store.members[memberKey{userID, boardID}] = true
}

func (e *testEnv) task(id uuid.UUID) model.Task {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	return e.store.tasks[id]
}

func (e *testEnv) countAssignments() int {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	return len(e.store.assignments)
}

func (e *testEnv) countInvitations() int {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	return len(e.store.invitations)
}

// newBoard creates a board owned by owner and returns it with its columns.
func (e *testEnv) newBoard(t *testing.T, owner model.User, name string) *model.BoardDetail {
	t.Helper()
	summary, err := e.boards.Create(context.Background(), owner.ID, CreateBoardInput{Name: name, Key: strings.ToUpper(name[:2])})
	require.NoError(t, err)
	detail, err := e.boards.Get(context.Background(), owner.ID, summary.ID)
	require.NoError(t, err)
	return detail
}
