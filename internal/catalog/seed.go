package catalog

import (
	"context"
	"fmt"
	"time"
)

// Seed fills an empty catalog with a small demo production. It is a no-op
// when any entity already exists and reports whether rows were written.
func (c *Catalog) Seed(ctx context.Context) (bool, error) {
	var count int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entities`).Scan(&count); err != nil {
		return false, fmt.Errorf("count entities: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	if err := seedRows(ctx, tx); err != nil {
		_ = tx.Rollback()
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	return true, nil
}

func seedRows(ctx context.Context, db execer) error {
	project := EntityRef{Type: "Project", ID: 1, Name: "demo_project"}
	seqA := EntityRef{Type: "Sequence", ID: 10, Name: "SEQ_A"}
	seqB := EntityRef{Type: "Sequence", ID: 11, Name: "SEQ_B"}
	anim := EntityRef{Type: "Step", ID: 300, Name: "Animation"}
	model := EntityRef{Type: "Step", ID: 301, Name: "Modeling"}
	artist := EntityRef{Type: "HumanUser", ID: 500, Name: "artist"}

	shot := func(id int64, code string, seq EntityRef, status string) Entity {
		return Entity{Type: "Shot", ID: id, Code: code, Fields: map[string]interface{}{
			"project":        project.Link(),
			"sg_sequence":    seq.Link(),
			"sg_status_list": status,
		}}
	}
	asset := func(id int64, code, kind string) Entity {
		return Entity{Type: "Asset", ID: id, Code: code, Fields: map[string]interface{}{
			"project":       project.Link(),
			"sg_asset_type": kind,
		}}
	}
	task := func(id int64, code string, owner, step EntityRef) Entity {
		return Entity{Type: "Task", ID: id, Code: code, Fields: map[string]interface{}{
			"project":        project.Link(),
			"entity":         owner.Link(),
			"step":           step.Link(),
			"task_assignees": []interface{}{artist.Link()},
		}}
	}

	shot010 := EntityRef{Type: "Shot", ID: 100, Name: "SHOT_010"}
	shot020 := EntityRef{Type: "Shot", ID: 101, Name: "SHOT_020"}
	hero := EntityRef{Type: "Asset", ID: 200, Name: "hero"}

	entities := []Entity{
		{Type: "Project", ID: project.ID, Code: project.Name, Fields: map[string]interface{}{}},
		{Type: "Sequence", ID: seqA.ID, Code: seqA.Name, Fields: map[string]interface{}{"project": project.Link()}},
		{Type: "Sequence", ID: seqB.ID, Code: seqB.Name, Fields: map[string]interface{}{"project": project.Link()}},
		shot(shot010.ID, shot010.Name, seqA, "ip"),
		shot(shot020.ID, shot020.Name, seqA, "wtg"),
		shot(102, "SHOT_030", seqB, "fin"),
		asset(hero.ID, hero.Name, "Character"),
		asset(201, "sidekick", "Character"),
		asset(202, "castle", "Environment"),
		asset(203, "sword", "Prop"),
		{Type: "Step", ID: anim.ID, Code: anim.Name, Fields: map[string]interface{}{}},
		{Type: "Step", ID: model.ID, Code: model.Name, Fields: map[string]interface{}{}},
		task(400, "anim", shot010, anim),
		task(401, "model", hero, model),
		task(402, "anim", shot020, anim),
		{Type: "HumanUser", ID: artist.ID, Code: artist.Name, Fields: map[string]interface{}{}},
	}
	for _, ent := range entities {
		if err := insertEntity(ctx, db, ent); err != nil {
			return err
		}
	}

	types := []PublishType{
		{ID: 1, Code: "Alembic Cache", Description: "Baked geometry"},
		{ID: 2, Code: "Image Sequence", Description: "Rendered frames"},
		{ID: 3, Code: "Maya Scene", Description: "Maya ascii scene"},
		{ID: 4, Code: "Nuke Script", Description: "Compositing script"},
	}
	for _, t := range types {
		if err := insertPublishType(ctx, db, t); err != nil {
			return err
		}
	}

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	publishes := []Publish{
		{ID: 1000, Code: "shot010_anim", Version: 1, TypeID: 3, Entity: shot010, Path: "/proj/demo/seq_a/shot010/anim/shot010_anim.v001.ma"},
		{ID: 1001, Code: "shot010_anim", Version: 2, TypeID: 3, Entity: shot010, Path: "/proj/demo/seq_a/shot010/anim/shot010_anim.v002.ma"},
		{ID: 1002, Code: "shot010_cache", Version: 1, TypeID: 1, Entity: shot010, Path: "/proj/demo/seq_a/shot010/cache/shot010_cache.v001.abc"},
		{ID: 1003, Code: "shot010_comp", Version: 1, TypeID: 4, Entity: shot010, Path: "/proj/demo/seq_a/shot010/comp/shot010_comp.v001.nk"},
		{ID: 1004, Code: "shot010_render", Version: 1, TypeID: 2, Entity: shot010, Path: "/proj/demo/seq_a/shot010/render/shot010_render.v001.####.exr"},
		{ID: 1010, Code: "shot020_anim", Version: 1, TypeID: 3, Entity: shot020, Path: "/proj/demo/seq_a/shot020/anim/shot020_anim.v001.ma"},
		{ID: 1020, Code: "hero_model", Version: 3, TypeID: 3, Entity: hero, Path: "/proj/demo/assets/hero/model/hero_model.v003.ma"},
		{ID: 1021, Code: "hero_model", Version: 2, TypeID: 3, Entity: hero, Path: "/proj/demo/assets/hero/model/hero_model.v002.ma"},
		{ID: 1022, Code: "hero_cache", Version: 1, TypeID: 1, Entity: hero, Path: "/proj/demo/assets/hero/cache/hero_cache.v001.abc"},
		{ID: 1030, Code: "anim_task_scene", Version: 1, TypeID: 3, Entity: EntityRef{Type: "Task", ID: 400, Name: "anim"}, Path: "/proj/demo/seq_a/shot010/anim/work/anim_task_scene.v001.ma"},
	}
	for i, p := range publishes {
		p.CreatedBy = artist.Name
		p.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		p.Description = fmt.Sprintf("%s v%03d", p.Code, p.Version)
		if err := insertPublish(ctx, db, p); err != nil {
			return err
		}
	}
	return nil
}
