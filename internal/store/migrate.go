package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/studyplan/ent/schema"
)

// Table names.
const (
	tableStudents      = "students"
	tableSubjects      = "subjects"
	tableSchedules     = "schedules"
	tableStudySessions = "study_sessions"
	tableSessionEvents = "session_events"
	tableSnapshots     = "snapshots"
)

// entities maps each table to the ent schema that declares its columns.
var entities = []struct {
	table  string
	schema ent.Interface
}{
	{tableStudents, entschema.Student{}},
	{tableSubjects, entschema.Subject{}},
	{tableSchedules, entschema.Schedule{}},
	{tableStudySessions, entschema.StudySession{}},
	{tableSessionEvents, entschema.SessionEvent{}},
	{tableSnapshots, entschema.Snapshot{}},
}

// migrate creates or extends every table. ent's migrator runs in
// append-only mode: it adds tables, columns and indexes but never drops.
func (s *Store) migrate(ctx context.Context) error {
	tables := make([]*schema.Table, 0, len(entities))
	for _, e := range entities {
		t, err := tableOf(e.table, e.schema)
		if err != nil {
			return err
		}
		tables = append(tables, t)
	}

	m, err := schema.NewMigrate(s.drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// tableOf builds the SQL table for an ent schema from its field and index
// descriptors, mixins first. A string field named "id" becomes the primary
// key; otherwise an auto-increment integer id is added.
func tableOf(name string, s ent.Interface) (*schema.Table, error) {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	t := schema.NewTable(name)
	hasID := false
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("table %s field %s: %w", name, d.Name, d.Err)
		}
		if d.Name == "id" {
			hasID = true
		}
	}
	if !hasID {
		t.AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})
	}

	for _, f := range fields {
		d := f.Descriptor()
		col := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Size:     int64(d.Size),
			Unique:   d.Unique,
			Nullable: d.Optional,
			Comment:  d.Comment,
			Default:  literalDefault(d.Default),
		}
		if d.Name == "id" {
			t.AddPrimary(col)
			continue
		}
		t.AddColumn(col)
	}

	for _, ix := range indexes {
		d := ix.Descriptor()
		idxName := d.StorageKey
		if idxName == "" {
			idxName = strings.ReplaceAll(name, "_", "") + "_" + strings.Join(d.Fields, "_")
		}
		t.AddIndex(idxName, d.Unique, d.Fields)
	}
	return t, nil
}

// literalDefault keeps defaults the database can store directly and drops
// default functions such as time.Now.
func literalDefault(v any) any {
	if v == nil {
		return nil
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Float32, reflect.Float64:
		return v
	}
	return nil
}
