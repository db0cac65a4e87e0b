package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/projectpulse/project-system/internal/core/domain"
	"github.com/projectpulse/project-system/internal/core/ports"
)

const collectionTasks = "tasks"

type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

// Create inserts a new task document.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, t)
	return err
}

// FindByID retrieves a task by id.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Task
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns a page of tasks matching filter and the total count.
func (r *TaskRepository) List(ctx context.Context, f ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.AssigneeID != "" {
		filter["assigned_to_id"] = f.AssigneeID
	}
	if f.CreatorID != "" {
		filter["creator_id"] = f.CreatorID
	}
	if f.TeamID != "" {
		filter["team_id"] = f.TeamID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	limit := int64(f.Limit)
	skip := int64(f.Page-1) * limit
	if skip < 0 {
		skip = 0
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var tasks []*domain.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// UpdateIfStatus applies the update only while the stored status still equals
// expected. The status filter makes the read-modify-write optimistic: a
// transition racing against a concurrent writer matches zero documents and
// surfaces as a conflict instead of a silent overwrite.
func (r *TaskRepository) UpdateIfStatus(ctx context.Context, id string, expected domain.TaskStatus, u ports.TaskUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if u.Priority != nil {
		set["priority"] = *u.Priority
	}
	if u.Progress != nil {
		set["progress"] = *u.Progress
	}
	if u.Deadline != nil {
		set["deadline"] = *u.Deadline
	}

	update := bson.M{"$set": set}
	if u.AssigneeID != nil {
		if *u.AssigneeID == "" {
			update["$unset"] = bson.M{"assigned_to_id": ""}
		} else {
			set["assigned_to_id"] = *u.AssigneeID
		}
	}
	if u.HistoryEntry != nil {
		update["$push"] = bson.M{"status_history": *u.HistoryEntry}
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "status": expected}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing task from a stale precondition.
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return findErr
		}
		return domain.ErrInvalidTransition
	}
	return nil
}

// UpdateProgress sets only the progress field; status is deliberately not
// touched (progress and status are independent).
func (r *TaskRepository) UpdateProgress(ctx context.Context, id string, progress int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"progress": progress, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// FindAssignedActive returns every non-done task with an assignee. Unassigned
// means assigned_to_id is absent, checked explicitly with $exists.
func (r *TaskRepository) FindAssignedActive(ctx context.Context) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{
		"assigned_to_id": bson.M{"$exists": true, "$ne": nil},
		"status":         bson.M{"$ne": domain.StatusDone},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []*domain.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// EnsureIndexes creates necessary indexes on the tasks collection.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "assigned_to_id", Value: 1}}},
		{Keys: bson.D{{Key: "creator_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "team_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
