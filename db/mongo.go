// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/David01mc/CarnavalWEB-sub000/models"
)

// Collection names
const (
	CollectionTemplates    = "bingo_templates"
	CollectionProgress     = "bingo_progress"
	CollectionAgrupaciones = "agrupaciones"
)

// MongoStore keeps one document per template and one per (user, year)
// progress record, with marked cells embedded as an array.
type MongoStore struct {
	templates    *mongo.Collection
	progress     *mongo.Collection
	agrupaciones *mongo.Collection
}

func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{
		templates:    database.Collection(CollectionTemplates),
		progress:     database.Collection(CollectionProgress),
		agrupaciones: database.Collection(CollectionAgrupaciones),
	}
}

// ConnectMongo opens a client and verifies it against the primary.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique keys the store relies on.
// Safe to call multiple times.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.templates.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "year", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create template index: %w", err)
	}

	_, err = s.progress.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "year", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create progress index: %w", err)
	}

	_, err = s.agrupaciones.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create agrupacion index: %w", err)
	}
	return nil
}

func progressKey(userID, year string) bson.D {
	return bson.D{{Key: "userId", Value: userID}, {Key: "year", Value: year}}
}

func (s *MongoStore) EnsureTemplate(ctx context.Context, defaults models.BingoTemplate) (models.BingoTemplate, error) {
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "cells", Value: defaults.Cells},
		{Key: "createdAt", Value: defaults.CreatedAt},
		{Key: "updatedAt", Value: defaults.UpdatedAt},
	}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var tpl models.BingoTemplate
	err := s.templates.FindOneAndUpdate(ctx, bson.D{{Key: "year", Value: defaults.Year}}, update, opts).Decode(&tpl)
	if err != nil {
		return models.BingoTemplate{}, fmt.Errorf("ensure template: %w", err)
	}
	return tpl, nil
}

func (s *MongoStore) SetCellTitle(ctx context.Context, year string, cellID int, title string, now time.Time) (bool, error) {
	filter := bson.D{{Key: "year", Value: year}, {Key: "cells.id", Value: cellID}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "cells.$.title", Value: title},
		{Key: "updatedAt", Value: now},
	}}}

	res, err := s.templates.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("set cell title: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (s *MongoStore) EnsureProgress(ctx context.Context, userID, year string, now time.Time) (models.UserBingoProgress, error) {
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "cells", Value: []models.MarkedCell{}},
		{Key: "completedAt", Value: nil},
		{Key: "createdAt", Value: now},
		{Key: "updatedAt", Value: now},
	}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var p models.UserBingoProgress
	if err := s.progress.FindOneAndUpdate(ctx, progressKey(userID, year), update, opts).Decode(&p); err != nil {
		return models.UserBingoProgress{}, fmt.Errorf("ensure progress: %w", err)
	}
	return p, nil
}

// UpsertMarkedCell replaces the matching array element through the
// positional operator, falling back to a push guarded on the cell being
// absent. A push that loses to a concurrent push of the same cell retries
// the replace.
func (s *MongoStore) UpsertMarkedCell(ctx context.Context, userID, year string, cell models.MarkedCell) (models.UserBingoProgress, bool, error) {
	if _, err := s.EnsureProgress(ctx, userID, year, cell.MarkedAt); err != nil {
		return models.UserBingoProgress{}, false, err
	}

	replaced, err := s.replaceMarkedCell(ctx, userID, year, cell)
	if err != nil {
		return models.UserBingoProgress{}, false, err
	}

	if !replaced {
		push := append(progressKey(userID, year), bson.E{Key: "cells.cellId", Value: bson.D{{Key: "$ne", Value: cell.CellID}}})
		res, err := s.progress.UpdateOne(ctx, push, bson.D{
			{Key: "$push", Value: bson.D{{Key: "cells", Value: cell}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: cell.MarkedAt}}},
		})
		if err != nil {
			return models.UserBingoProgress{}, false, fmt.Errorf("push marked cell: %w", err)
		}
		if res.MatchedCount == 0 {
			if replaced, err = s.replaceMarkedCell(ctx, userID, year, cell); err != nil {
				return models.UserBingoProgress{}, false, err
			}
		}
	}

	var p models.UserBingoProgress
	if err := s.progress.FindOne(ctx, progressKey(userID, year)).Decode(&p); err != nil {
		return models.UserBingoProgress{}, false, fmt.Errorf("read progress: %w", err)
	}
	return p, replaced, nil
}

func (s *MongoStore) replaceMarkedCell(ctx context.Context, userID, year string, cell models.MarkedCell) (bool, error) {
	filter := append(progressKey(userID, year), bson.E{Key: "cells.cellId", Value: cell.CellID})
	res, err := s.progress.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: bson.D{
		{Key: "cells.$", Value: cell},
		{Key: "updatedAt", Value: cell.MarkedAt},
	}}})
	if err != nil {
		return false, fmt.Errorf("replace marked cell: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// MarkCompleted requires an unset completedAt and a 25th array element.
func (s *MongoStore) MarkCompleted(ctx context.Context, userID, year string, at time.Time) (bool, error) {
	filter := append(progressKey(userID, year),
		bson.E{Key: "completedAt", Value: nil},
		bson.E{Key: fmt.Sprintf("cells.%d", models.CellCount-1), Value: bson.D{{Key: "$exists", Value: true}}},
	)
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "completedAt", Value: at},
		{Key: "updatedAt", Value: at},
	}}}

	res, err := s.progress.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("mark completed: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func (s *MongoStore) RemoveMarkedCell(ctx context.Context, userID, year string, cellID int, now time.Time) error {
	update := bson.D{
		{Key: "$pull", Value: bson.D{{Key: "cells", Value: bson.D{{Key: "cellId", Value: cellID}}}}},
		{Key: "$set", Value: bson.D{
			{Key: "completedAt", Value: nil},
			{Key: "updatedAt", Value: now},
		}},
	}
	if _, err := s.progress.UpdateOne(ctx, progressKey(userID, year), update); err != nil {
		return fmt.Errorf("remove marked cell: %w", err)
	}
	return nil
}

func (s *MongoStore) ResetProgress(ctx context.Context, userID, year string, now time.Time) error {
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "cells", Value: []models.MarkedCell{}},
			{Key: "completedAt", Value: nil},
			{Key: "updatedAt", Value: now},
		}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: now}}},
	}
	_, err := s.progress.UpdateOne(ctx, progressKey(userID, year), update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

func (s *MongoStore) ListAgrupaciones(ctx context.Context) ([]models.Agrupacion, error) {
	cur, err := s.agrupaciones.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find agrupaciones: %w", err)
	}

	list := []models.Agrupacion{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("decode agrupaciones: %w", err)
	}
	return list, nil
}

func (s *MongoStore) UpsertAgrupacion(ctx context.Context, a models.Agrupacion) error {
	_, err := s.agrupaciones.ReplaceOne(ctx, bson.D{{Key: "_id", Value: a.ID}}, a, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert agrupacion %s: %w", a.ID, err)
	}
	return nil
}
